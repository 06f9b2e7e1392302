package analyzer

import (
	"recipewatch/internal/recipe"
	"recipewatch/internal/textutil"
)

// Vocabulary is the editable form of the marker and keyword lists. Convert it
// with NewTerms before use.
type Vocabulary struct {
	IngredientMarkers  []string
	InstructionMarkers []string
	// MealKeywords is consulted in recipe.MealTypes order.
	MealKeywords map[recipe.MealType][]string
}

// DefaultVocabulary returns the built-in marker and keyword lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		IngredientMarkers:  []string{"ingredients", "ingredient", "shopping list"},
		InstructionMarkers: []string{"instructions", "instruction", "method", "directions"},
		MealKeywords: map[recipe.MealType][]string{
			recipe.Breakfast: {"breakfast", "morning", "wake up"},
			recipe.Lunch:     {"lunch", "afternoon", "break"},
			recipe.Dinner:    {"dinner", "night", "sleep", "family dinner", "supper"},
		},
	}
}

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	set := make(stringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s stringSet) has(value string) bool {
	_, ok := s[value]
	return ok
}

type mealVocabulary struct {
	meal     recipe.MealType
	keywords stringSet
}

// Terms is an immutable, normalized snapshot of a Vocabulary. The zero value
// matches nothing; use DefaultTerms or NewTerms.
type Terms struct {
	ingredient  stringSet
	instruction stringSet
	meals       []mealVocabulary
}

// NewTerms normalizes every entry of v with textutil.Normalize so lookups
// compare like with like.
func NewTerms(v Vocabulary) Terms {
	meals := make([]mealVocabulary, 0, len(recipe.MealTypes))
	for _, meal := range recipe.MealTypes {
		meals = append(meals, mealVocabulary{meal: meal, keywords: newStringSet(normalizeAll(v.MealKeywords[meal]))})
	}
	return Terms{
		ingredient:  newStringSet(normalizeAll(v.IngredientMarkers)),
		instruction: newStringSet(normalizeAll(v.InstructionMarkers)),
		meals:       meals,
	}
}

// DefaultTerms returns Terms built from DefaultVocabulary.
func DefaultTerms() Terms {
	return NewTerms(DefaultVocabulary())
}

// IsIngredientMarker reports whether an already normalized line is an
// ingredients heading.
func (t Terms) IsIngredientMarker(normalized string) bool {
	return t.ingredient.has(normalized)
}

// IsInstructionMarker reports whether an already normalized line is an
// instructions heading.
func (t Terms) IsInstructionMarker(normalized string) bool {
	return t.instruction.has(normalized)
}

// mealFor returns the first meal whose keyword list contains token.
func (t Terms) mealFor(token string) (recipe.MealType, bool) {
	for _, m := range t.meals {
		if m.keywords.has(token) {
			return m.meal, true
		}
	}
	return "", false
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, textutil.Normalize(v))
	}
	return out
}
