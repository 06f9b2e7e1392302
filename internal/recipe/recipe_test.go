package recipe_test

import (
	"testing"

	"recipewatch/internal/recipe"
)

func sample() recipe.Recipe {
	return recipe.New(
		recipe.PostInfo{Author: "cook", Score: 42, Created: 1700000000, ID: "abc", URL: "https://www.reddit.com/r/x/comments/abc/t/"},
		recipe.RefinedPost{
			Title:        "Banana Bread",
			Ingredients:  []string{"- 3 bananas", "- 1 cup flour"},
			Instructions: []string{"- Mash", "- Bake"},
			Type:         recipe.Breakfast,
		},
	)
}

func TestStringDigestLayout(t *testing.T) {
	want := "Banana Bread - /u/cook\n" +
		"https://www.reddit.com/r/x/comments/abc/t/\n\n" +
		"Ingredients:\n\n- 3 bananas\n- 1 cup flour\n\n" +
		"Instructions:\n\n- Mash\n- Bake"
	if got := sample().String(); got != want {
		t.Fatalf("unexpected digest layout:\n%q\nwant\n%q", got, want)
	}
}

func TestSimpleLayout(t *testing.T) {
	want := "Banana Bread\nIngredients\n- 3 bananas\n- 1 cup flour\nInstructions\n- Mash\n- Bake\n"
	if got := sample().Simple(); got != want {
		t.Fatalf("unexpected simple layout:\n%q\nwant\n%q", got, want)
	}
}

func TestParseMealType(t *testing.T) {
	for _, label := range []string{"Breakfast", "Lunch", "Dinner", "All meals!"} {
		if _, ok := recipe.ParseMealType(label); !ok {
			t.Fatalf("expected %q to parse", label)
		}
	}
	if _, ok := recipe.ParseMealType("Brunch"); ok {
		t.Fatal("unexpected parse of unknown meal type")
	}
}

func TestEmbeddedFieldsPromote(t *testing.T) {
	r := sample()
	if r.ID != "abc" || r.Title != "Banana Bread" || r.Type != recipe.Breakfast {
		t.Fatalf("unexpected promoted fields %+v", r)
	}
}
