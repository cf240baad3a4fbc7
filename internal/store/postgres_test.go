package store

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/recipe"
	"fridgechef/internal/user"
)

// openTestDB connects to TEST_DATABASE_URL, skipping when it is not set. The
// tables are emptied before each test.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(context.Background(), dsn, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("TRUNCATE saved_recipes, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return db
}

func TestPostgresUserStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := user.NewPostgresStore(db)

	id, err := users.Create(ctx, &user.User{Email: "cook@example.com", PasswordHash: "hash", Name: "Cook"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &user.User{Email: "cook@example.com", PasswordHash: "other", Name: "Copy"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	u, err := users.GetByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Cook", u.Name)
	assert.Equal(t, []string{}, u.Preferences.Allergies)

	prefs := user.Preferences{Diet: "vegan", Allergies: []string{"peanut"}, Cuisines: []string{"한식"}}
	require.NoError(t, users.UpdatePreferences(ctx, id, prefs))
	require.NoError(t, users.UpdateName(ctx, id, "Chef"))

	u, err = users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chef", u.Name)
	assert.Equal(t, prefs, u.Preferences)

	_, err = users.GetByID(ctx, id+100)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestPostgresRecipeStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := user.NewPostgresStore(db)
	recipes := recipe.NewPostgresStore(db)

	owner, err := users.Create(ctx, &user.User{Email: "a@example.com", PasswordHash: "h", Name: "A"})
	require.NoError(t, err)
	other, err := users.Create(ctx, &user.User{Email: "b@example.com", PasswordHash: "h", Name: "B"})
	require.NoError(t, err)

	r := recipe.Recipe{
		Name:        "김치볶음밥",
		Ingredients: []recipe.Ingredient{{Name: "김치", Amount: "1컵"}},
		Steps:       []string{"볶는다"},
		CookingTime: 15,
		Difficulty:  "쉬움",
		Tips:        "참기름",
	}
	id, err := recipes.Save(ctx, &recipe.SavedRecipe{UserID: owner, Recipe: r, Category: recipe.DefaultCategory})
	require.NoError(t, err)

	list, err := recipes.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r, list[0].Recipe)

	assert.ErrorIs(t, recipes.Delete(ctx, other, id), recipe.ErrNotFound)
	require.NoError(t, recipes.Delete(ctx, owner, id))
	assert.ErrorIs(t, recipes.Delete(ctx, owner, id), recipe.ErrNotFound)
}
