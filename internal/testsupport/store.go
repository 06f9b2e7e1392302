package testsupport

import (
	"context"
	"testing"

	"recipewatch/internal/config"
	"recipewatch/internal/recipe"
	"recipewatch/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// InsertRecipe stores r or fails the test.
func InsertRecipe(t testing.TB, st *store.Store, r recipe.Recipe) {
	t.Helper()

	if _, err := st.Insert(context.Background(), r); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
}

// NewRecipe builds a recipe with a single ingredient and step.
func NewRecipe(id, author string, score, created int64, mealType recipe.MealType) recipe.Recipe {
	return recipe.New(
		recipe.PostInfo{
			Author:  author,
			Score:   score,
			Created: created,
			ID:      id,
			URL:     "https://www.reddit.com/r/recipes/comments/" + id,
		},
		recipe.RefinedPost{
			Title:        "Recipe " + id,
			Ingredients:  []string{"- 1 cup rice"},
			Instructions: []string{"- cook it"},
			Type:         mealType,
		},
	)
}
