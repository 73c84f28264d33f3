package transform

import (
	"database/sql"
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
)

var recipeDropColumns = []string{"description", "contributor_id", "nutrition"}

// Complexity levels.
const (
	ComplexityEasy     = "Easy"
	ComplexityModerate = "Moderate"
	ComplexityHard     = "Hard"
)

// Complexity classifies a recipe. The second threshold applies to the
// ingredient count.
func Complexity(minutes, ingredients float64) string {
	switch {
	case minutes <= 15 && ingredients <= 5:
		return ComplexityEasy
	case minutes <= 30 && ingredients <= 10:
		return ComplexityModerate
	default:
		return ComplexityHard
	}
}

// Recipes cleans the raw recipes dataset and derives complexity from minutes
// and n_ingredients.
func Recipes(raw *frame.Frame, _ time.Time) (*Result, error) {
	res := clean(raw)
	f := res.Frame

	if err := f.DropColumns(recipeDropColumns...); err != nil {
		return nil, failed("recipes", "drop columns", err)
	}

	if err := f.SortByInt("id"); err != nil {
		return nil, failed("recipes", "sort", err)
	}

	if err := f.Derive("complexity", func(row frame.RowView) (sql.NullString, error) {
		minutes, err := numberCell(row, "minutes")
		if err != nil {
			return frame.Null, err
		}
		ingredients, err := numberCell(row, "n_ingredients")
		if err != nil {
			return frame.Null, err
		}
		return frame.Value(Complexity(minutes, ingredients)), nil
	}); err != nil {
		return nil, failed("recipes", "compute complexity", err)
	}

	return res, nil
}

func numberCell(row frame.RowView, col string) (float64, error) {
	c, err := row.Get(col)
	if err != nil {
		return 0, err
	}
	return frame.ParseFloat(c.String)
}
