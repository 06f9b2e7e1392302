package recipe

import (
	"strings"
)

// MealType is the meal category assigned by the meal-type classifier.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	// AllMeals is the fallback when no meal keyword appears in the thread.
	AllMeals MealType = "All meals!"
)

// MealTypes lists the voting categories in tie-break order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// ParseMealType maps a stored label back to a MealType.
func ParseMealType(value string) (MealType, bool) {
	switch MealType(value) {
	case Breakfast, Lunch, Dinner, AllMeals:
		return MealType(value), true
	default:
		return "", false
	}
}

// PostInfo carries the feed-side facts about the post a recipe came from.
type PostInfo struct {
	Author  string
	Score   int64
	Created int64 // unix seconds
	ID      string
	URL     string
}

// RefinedPost carries the analyzer output. Ingredient and instruction
// entries are display-ready lines that start with "- ".
type RefinedPost struct {
	Title        string
	Ingredients  []string
	Instructions []string
	Type         MealType
}

// Recipe is a persisted recipe record. ID is unique across the store.
type Recipe struct {
	PostInfo
	RefinedPost
}

// New combines the post facts with the analyzer output.
func New(info PostInfo, refined RefinedPost) Recipe {
	return Recipe{PostInfo: info, RefinedPost: refined}
}

// String renders the digest entry layout.
func (r Recipe) String() string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString(" - /u/")
	b.WriteString(r.Author)
	b.WriteByte('\n')
	b.WriteString(r.URL)
	b.WriteString("\n\nIngredients:\n\n")
	b.WriteString(strings.Join(r.Ingredients, "\n"))
	b.WriteString("\n\nInstructions:\n\n")
	b.WriteString(strings.Join(r.Instructions, "\n"))
	return b.String()
}

// Simple renders the short layout used by `recipewatch recipes show`.
func (r Recipe) Simple() string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\nIngredients\n")
	for _, line := range r.Ingredients {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("Instructions\n")
	for _, line := range r.Instructions {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
