// internal/models/dram.go
package models

// UnknownPriceSentinel marks a missing price in the source data.
const UnknownPriceSentinel = -1

// Dram is one whiskey record of the review dataset.
type Dram struct {
	Name          string  `json:"dram"`
	AverageRating float64 `json:"average_ratings"`
	AveragePrice  Price   `json:"average_price"`
}

// Price is a bottle price in whole dollars. Known is false when the source
// had no usable price.
type Price struct {
	Dollars int
	Known   bool
}

// NewPrice truncates raw toward zero. Anything that does not truncate to a
// positive amount, the -1 sentinel included, is an unknown price.
func NewPrice(raw float64) Price {
	dollars := int(raw)
	if dollars <= 0 {
		return Price{}
	}
	return Price{Dollars: dollars, Known: true}
}

// UnknownPrice returns a Price with no value.
func UnknownPrice() Price {
	return Price{}
}
