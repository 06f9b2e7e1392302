package analyzer

import "recipewatch/internal/textutil"

// Detector decides whether post text looks like a recipe.
type Detector struct {
	terms Terms
}

// NewDetector returns a Detector using terms.
func NewDetector(terms Terms) Detector {
	return Detector{terms: terms}
}

// IsRecipe normalizes the whole text, splits it into lines and reports whether
// one line equals an ingredients marker and another equals an instructions
// marker. Lines are compared whole; "ingredients for two" does not count.
func (d Detector) IsRecipe(text string) bool {
	var hasIngredients, hasInstructions bool
	for _, line := range textutil.NormalizedLines(text) {
		if !hasIngredients && d.terms.IsIngredientMarker(line) {
			hasIngredients = true
		}
		if !hasInstructions && d.terms.IsInstructionMarker(line) {
			hasInstructions = true
		}
		if hasIngredients && hasInstructions {
			return true
		}
	}
	return false
}
