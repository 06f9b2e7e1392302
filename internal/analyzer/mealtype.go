package analyzer

import (
	"strings"

	"recipewatch/internal/recipe"
	"recipewatch/internal/textutil"
)

// MealTypeClassifier votes on a meal type from thread-wide text.
type MealTypeClassifier struct {
	terms Terms
}

// NewMealTypeClassifier returns a classifier using terms.
func NewMealTypeClassifier(terms Terms) MealTypeClassifier {
	return MealTypeClassifier{terms: terms}
}

// Votes counts, per meal type, how many whitespace tokens of the normalized
// thread text are keywords for it. A token counts once, for the first meal
// that lists it.
func (c MealTypeClassifier) Votes(threadText string) map[recipe.MealType]int {
	votes := make(map[recipe.MealType]int, len(recipe.MealTypes))
	for _, meal := range recipe.MealTypes {
		votes[meal] = 0
	}
	for _, token := range strings.Fields(textutil.Normalize(threadText)) {
		if meal, ok := c.terms.mealFor(token); ok {
			votes[meal]++
		}
	}
	return votes
}

// Classify returns the meal type with the most votes. Ties resolve in
// Breakfast, Lunch, Dinner order; no votes at all yields recipe.AllMeals.
func (c MealTypeClassifier) Classify(threadText string) recipe.MealType {
	votes := c.Votes(threadText)
	best := recipe.AllMeals
	bestCount := 0
	for _, meal := range recipe.MealTypes {
		if votes[meal] > bestCount {
			best, bestCount = meal, votes[meal]
		}
	}
	return best
}
