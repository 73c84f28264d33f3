package transform

import (
	"database/sql"
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
)

// Rating levels.
const (
	RatingLow    = "Low"
	RatingMedium = "Medium"
	RatingHigh   = "High"
)

// RatingLevel buckets a rating: below 3 is Low, up to 4 is Medium, above is High.
func RatingLevel(rating float64) string {
	switch {
	case rating < 3:
		return RatingLow
	case rating <= 4:
		return RatingMedium
	default:
		return RatingHigh
	}
}

// Interactions cleans the raw interactions dataset, sorts it by user_id and
// derives rating_level.
func Interactions(raw *frame.Frame, _ time.Time) (*Result, error) {
	res := clean(raw)
	f := res.Frame

	if err := f.SortByInt("user_id"); err != nil {
		return nil, failed("interactions", "sort", err)
	}

	if err := f.Derive("rating_level", func(row frame.RowView) (sql.NullString, error) {
		rating, err := numberCell(row, "rating")
		if err != nil {
			return frame.Null, err
		}
		return frame.Value(RatingLevel(rating)), nil
	}); err != nil {
		return nil, failed("interactions", "compute rating level", err)
	}

	return res, nil
}
