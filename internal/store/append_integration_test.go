package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/foodetl/internal/model"
	"github.com/vvka-141/foodetl/internal/schema"
	"github.com/vvka-141/foodetl/internal/store"
	testhelpers "github.com/vvka-141/foodetl/internal/testing"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

func TestAppend_Integration(t *testing.T) {
	connString := testhelpers.CreateTestDB(t, testhelpers.RequireDatabase(t))
	pool := testhelpers.GetTestPool(t, connString)
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	email := "a@b.com"

	n, err := store.Append(ctx, conn, schema.Users, []model.User{
		{UserID: 1, FirstName: "Ann", LastName: "Lee", Email: &email, Age: 34, LastModified: today},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Append(ctx, conn, schema.Recipes, []model.Recipe{{ID: 10, Name: "toast", Complexity: "Easy"}})
	require.NoError(t, err)

	t.Run("generated ids", func(t *testing.T) {
		n, err := store.Append(ctx, conn, schema.Interactions, []model.Interaction{
			{UserID: 1, RecipeID: 10, RatingLevel: "Low"},
			{UserID: 1, RecipeID: 10, RatingLevel: "High"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		var maxID int64
		require.NoError(t, pool.QueryRow(ctx, "SELECT max(id) FROM interactions").Scan(&maxID))
		assert.Equal(t, int64(2), maxID)
	})

	t.Run("missing user is rejected", func(t *testing.T) {
		_, err := store.Append(ctx, conn, schema.Interactions, []model.Interaction{
			{UserID: 99, RecipeID: 10, RatingLevel: "Low"},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, foodetl.ErrConstraintViolation)
		var ce *store.ConstraintError
		require.ErrorAs(t, err, &ce)
		assert.True(t, ce.IsForeignKeyViolation())
		assert.Equal(t, "interactions_user_id_fkey", ce.Constraint)
	})

	t.Run("missing recipe is rejected", func(t *testing.T) {
		_, err := store.Append(ctx, conn, schema.Interactions, []model.Interaction{
			{UserID: 1, RecipeID: 404, RatingLevel: "Low"},
		})
		var ce *store.ConstraintError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "interactions_recipe_id_fkey", ce.Constraint)
	})

	t.Run("duplicate user is rejected and nothing else changes", func(t *testing.T) {
		_, err := store.Append(ctx, conn, schema.Users, []model.User{
			{UserID: 2, FirstName: "Bo", LastName: "Ng", Age: 40, LastModified: today},
			{UserID: 1, FirstName: "Ann", LastName: "Lee", Age: 34, LastModified: today},
		})
		var ce *store.ConstraintError
		require.ErrorAs(t, err, &ce)
		assert.False(t, ce.IsForeignKeyViolation())
		assert.Equal(t, int64(1), testhelpers.CountRows(t, pool, "users"), "a failed COPY appends nothing")
	})

	t.Run("deleting a user cascades", func(t *testing.T) {
		_, err := pool.Exec(ctx, "DELETE FROM users WHERE user_id = 1")
		require.NoError(t, err)
		assert.Zero(t, testhelpers.CountRows(t, pool, "interactions"))
	})
}
