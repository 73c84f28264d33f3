package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/internal/schema"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

func readFrame(t *testing.T, lines ...string) *frame.Frame {
	t.Helper()
	f, err := frame.ReadCSV(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValues_MatchTableWidth(t *testing.T) {
	assert.Len(t, User{}.Values(), len(schema.Users.Columns))
	assert.Len(t, Recipe{}.Values(), len(schema.Recipes.Columns))
	assert.Len(t, Interaction{}.Values(), len(schema.Interactions.Columns))
}

func TestUsers(t *testing.T) {
	f := readFrame(t,
		"user_id,first_name,last_name,sex,email,job_title,date_of_birth,age,last_modified,hobby",
		"1,Ann,Lee,F,a@b.com,Chef,1990-01-01,34,2024-06-15,chess",
	)

	users, err := Users(f)
	require.NoError(t, err)
	require.Len(t, users, 1)

	u := users[0]
	assert.Equal(t, int64(1), u.UserID)
	assert.Equal(t, "Ann", u.FirstName)
	require.NotNil(t, u.Email)
	assert.Equal(t, "a@b.com", *u.Email)
	require.NotNil(t, u.DateOfBirth)
	assert.Equal(t, day(1990, 1, 1), *u.DateOfBirth)
	assert.Equal(t, int64(34), u.Age)
	assert.Equal(t, day(2024, 6, 15), u.LastModified)

	values := u.Values()
	assert.Equal(t, int64(1), values[0])
	assert.Equal(t, int64(34), values[7])
}

func TestUsers_OptionalColumnsMayBeAbsent(t *testing.T) {
	f := readFrame(t,
		"user_id,first_name,last_name,age,last_modified",
		"1,Ann,Lee,34,2024-06-15",
	)

	users, err := Users(f)
	require.NoError(t, err)
	assert.Nil(t, users[0].Sex)
	assert.Nil(t, users[0].DateOfBirth)
}

func TestUsers_Errors(t *testing.T) {
	tests := map[string][]string{
		"missing required column": {
			"user_id,first_name,age,last_modified",
			"1,Ann,34,2024-06-15",
		},
		"bad integer": {
			"user_id,first_name,last_name,age,last_modified",
			"one,Ann,Lee,34,2024-06-15",
		},
		"bad date": {
			"user_id,first_name,last_name,age,last_modified",
			"1,Ann,Lee,34,today",
		},
		"null required": {
			"user_id,first_name,last_name,age,last_modified",
			"1,,Lee,34,2024-06-15",
		},
	}
	for name, lines := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Users(readFrame(t, lines...))
			require.Error(t, err)
			assert.ErrorIs(t, err, foodetl.ErrMalformedInput)
		})
	}
}

func TestRecipes(t *testing.T) {
	f := readFrame(t,
		"name,id,minutes,submitted,tags,n_steps,steps,ingredients,n_ingredients,complexity",
		"soup,5,10.0,2005-09-16,\"['a', 'b']\",3,\"['boil']\",\"['water']\",3,Easy",
	)

	recipes, err := Recipes(f)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, int64(5), r.ID)
	require.NotNil(t, r.Minutes)
	assert.Equal(t, int64(10), *r.Minutes)
	require.NotNil(t, r.Tags)
	assert.Equal(t, "['a', 'b']", *r.Tags)
	assert.Equal(t, "Easy", r.Complexity)
	assert.Equal(t, "Easy", r.Values()[8])
}

func TestInteractions_WithoutID(t *testing.T) {
	f := readFrame(t,
		"user_id,recipe_id,date,rating,review,rating_level",
		"1,5,2020-01-01,4,ok,Medium",
	)

	interactions, err := Interactions(f)
	require.NoError(t, err)
	require.Len(t, interactions, 1)

	i := interactions[0]
	assert.Nil(t, i.ID)
	assert.Equal(t, int64(1), i.UserID)
	assert.Equal(t, int64(5), i.RecipeID)
	require.NotNil(t, i.Rating)
	assert.Equal(t, int64(4), *i.Rating)
	assert.Equal(t, "Medium", i.RatingLevel)
}

func TestInteractions_WithID(t *testing.T) {
	f := readFrame(t,
		"id,user_id,recipe_id,rating,rating_level",
		"9,1,5,5,High",
	)

	interactions, err := Interactions(f)
	require.NoError(t, err)
	require.NotNil(t, interactions[0].ID)
	assert.Equal(t, int64(9), *interactions[0].ID)
	assert.Nil(t, interactions[0].Date)
}

func TestInteractions_ErrorNamesRow(t *testing.T) {
	f := readFrame(t,
		"user_id,recipe_id,rating,rating_level",
		"1,5,4,Medium",
		"2,x,4,Medium",
	)

	_, err := Interactions(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), `"recipe_id"`)
}
