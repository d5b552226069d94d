package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"whiskey-reviewer/internal/common/errors"
	"whiskey-reviewer/internal/common/validation"
	"whiskey-reviewer/internal/models"
)

// LoadPostgres reads every row of table (columns dram, average_ratings,
// average_price) in primary key order. A NULL price is an unknown price.
func LoadPostgres(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	query := fmt.Sprintf(
		"SELECT dram, average_ratings, average_price FROM %s ORDER BY id",
		pq.QuoteIdentifier(table),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewDatasetLoadFailedError("postgres:"+table, err)
	}
	defer rows.Close()

	var records []models.Dram
	for i := 0; rows.Next(); i++ {
		var (
			name   string
			rating float64
			price  sql.NullFloat64
		)
		if err := rows.Scan(&name, &rating, &price); err != nil {
			return nil, errors.NewDatasetLoadFailedError("postgres:"+table, err)
		}

		doc := map[string]interface{}{"dram": name, "average_ratings": rating}
		if err := validateRecord(i, func() (*validation.ValidationResult, error) {
			return recordValidator.Validate(doc)
		}); err != nil {
			return nil, err
		}

		raw := rawDram{Dram: name, AverageRatings: rating}
		if price.Valid {
			raw.AveragePrice = &price.Float64
		}
		records = append(records, raw.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatasetLoadFailedError("postgres:"+table, err)
	}

	return NewStore(records), nil
}
