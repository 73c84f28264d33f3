// Package model holds the records appended to the users, recipes and
// interactions tables and decodes them from transformed frames.
//
// Values returns a record's fields in the column order of its schema table.
// Optional fields are pointers; nil is stored as NULL.
package model

import (
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/internal/schema"
)

// Record is a row ready for appending to its table.
type Record interface {
	Values() []any
}

type User struct {
	UserID       int64
	FirstName    string
	LastName     string
	Sex          *string
	Email        *string
	JobTitle     *string
	DateOfBirth  *time.Time
	Age          int64
	LastModified time.Time
}

func (u User) Values() []any {
	return []any{u.UserID, u.FirstName, u.LastName, u.Sex, u.Email, u.JobTitle, u.DateOfBirth, u.Age, u.LastModified}
}

type Recipe struct {
	ID           int64
	Name         string
	Minutes      *int64
	Submitted    *time.Time
	Tags         *string
	NSteps       *int64
	Ingredients  *string
	NIngredients *int64
	Complexity   string
}

func (r Recipe) Values() []any {
	return []any{r.ID, r.Name, r.Minutes, r.Submitted, r.Tags, r.NSteps, r.Ingredients, r.NIngredients, r.Complexity}
}

// Interaction is a user's review of a recipe. A nil ID is generated by the
// database.
type Interaction struct {
	ID          *int64
	UserID      int64
	RecipeID    int64
	Date        *time.Time
	Rating      *int64
	Review      *string
	RatingLevel string
}

func (i Interaction) Values() []any {
	return []any{i.ID, i.UserID, i.RecipeID, i.Date, i.Rating, i.Review, i.RatingLevel}
}

// Users decodes a transformed users frame.
func Users(f *frame.Frame) ([]User, error) {
	return decode(schema.UsersTable, f, func(r *rowReader) User {
		return User{
			UserID:       r.integer("user_id"),
			FirstName:    r.str("first_name"),
			LastName:     r.str("last_name"),
			Sex:          r.optStr("sex"),
			Email:        r.optStr("email"),
			JobTitle:     r.optStr("job_title"),
			DateOfBirth:  r.optDate("date_of_birth"),
			Age:          r.integer("age"),
			LastModified: r.date("last_modified"),
		}
	})
}

// Recipes decodes a transformed recipes frame.
func Recipes(f *frame.Frame) ([]Recipe, error) {
	return decode(schema.RecipesTable, f, func(r *rowReader) Recipe {
		return Recipe{
			ID:           r.integer("id"),
			Name:         r.str("name"),
			Minutes:      r.optInteger("minutes"),
			Submitted:    r.optDate("submitted"),
			Tags:         r.optStr("tags"),
			NSteps:       r.optInteger("n_steps"),
			Ingredients:  r.optStr("ingredients"),
			NIngredients: r.optInteger("n_ingredients"),
			Complexity:   r.str("complexity"),
		}
	})
}

// Interactions decodes a transformed interactions frame.
func Interactions(f *frame.Frame) ([]Interaction, error) {
	return decode(schema.InteractionsTable, f, func(r *rowReader) Interaction {
		return Interaction{
			ID:          r.optInteger("id"),
			UserID:      r.integer("user_id"),
			RecipeID:    r.integer("recipe_id"),
			Date:        r.optDate("date"),
			Rating:      r.optInteger("rating"),
			Review:      r.optStr("review"),
			RatingLevel: r.str("rating_level"),
		}
	})
}
