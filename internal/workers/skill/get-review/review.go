package getreview

import (
	"fmt"

	"whiskey-reviewer/internal/models"
)

// QualityDescriptor bands a 0-100 rating. Bands are exclusive-low,
// inclusive-high at 49, 69 and 89.
func QualityDescriptor(rating float64) string {
	switch {
	case rating > 89:
		return "highly regarded"
	case rating > 69:
		return "respectable"
	case rating > 49:
		return "decent"
	default:
		return "awful"
	}
}

// PriceDescriptor bands a whole-dollar price.
func PriceDescriptor(dollars int) string {
	switch {
	case dollars < 50:
		return "affordable"
	case dollars < 100:
		return "average-priced"
	default:
		return "expensive"
	}
}

// Synthesize composes the spoken review. The price sentence is left out
// entirely when the price is unknown.
func Synthesize(d models.Dram) string {
	text := fmt.Sprintf("The %s is a %s dram, with an average rating of %v.",
		d.Name, QualityDescriptor(d.AverageRating), d.AverageRating)

	if d.AveragePrice.Known {
		text += fmt.Sprintf(" It's also an %s bottle at $%d for a fifth.",
			PriceDescriptor(d.AveragePrice.Dollars), d.AveragePrice.Dollars)
	}
	return text
}

// NotFoundText is the apology for a dram missing from the dataset. The name is
// echoed as spoken.
func NotFoundText(requested string) string {
	return fmt.Sprintf("Sorry, I don't have an information on %s.", requested)
}
