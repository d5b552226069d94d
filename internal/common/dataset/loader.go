package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"whiskey-reviewer/internal/common/errors"
	"whiskey-reviewer/internal/common/validation"
	"whiskey-reviewer/internal/models"
)

// recordSchema is the load-time contract for one source record. A null or
// absent price is accepted and treated like the -1 sentinel.
const recordSchema = `{
	"type": "object",
	"required": ["dram", "average_ratings"],
	"properties": {
		"dram": {"type": "string", "minLength": 1},
		"average_ratings": {"type": "number", "minimum": 0, "maximum": 100},
		"average_price": {"type": ["number", "null"]}
	}
}`

var recordValidator = validation.MustCompile(recordSchema)

// rawDram mirrors the source file layout.
type rawDram struct {
	Dram           string   `json:"dram"`
	AverageRatings float64  `json:"average_ratings"`
	AveragePrice   *float64 `json:"average_price"`
}

func (r rawDram) toModel() models.Dram {
	price := models.UnknownPrice()
	if r.AveragePrice != nil {
		price = models.NewPrice(*r.AveragePrice)
	}
	return models.Dram{
		Name:          r.Dram,
		AverageRating: r.AverageRatings,
		AveragePrice:  price,
	}
}

// LoadFile reads a JSON array of dram records from path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDatasetLoadFailedError(path, err)
	}
	defer f.Close()

	return decode(f, path)
}

// LoadReader reads a JSON array of dram records from r.
func LoadReader(r io.Reader) (*Store, error) {
	return decode(r, "reader")
}

func decode(r io.Reader, source string) (*Store, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.NewDatasetLoadFailedError(source, err)
	}

	records := make([]models.Dram, 0, len(items))
	for i, item := range items {
		if err := validateRecord(i, func() (*validation.ValidationResult, error) {
			return recordValidator.ValidateJSON(item)
		}); err != nil {
			return nil, err
		}

		var raw rawDram
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, errors.NewDatasetRecordInvalidError(i, err.Error())
		}
		records = append(records, raw.toModel())
	}

	return NewStore(records), nil
}

func validateRecord(index int, run func() (*validation.ValidationResult, error)) error {
	result, err := run()
	if err != nil {
		return errors.NewDatasetRecordInvalidError(index, err.Error())
	}
	if !result.Valid {
		return errors.NewDatasetRecordInvalidError(index, strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

// Summary is a one-line description used in startup logs.
func Summary(s *Store) string {
	return fmt.Sprintf("%d drams (%d duplicate names)", s.Len(), len(s.Duplicates()))
}
