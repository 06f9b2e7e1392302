package analyzer

import (
	"strings"

	"recipewatch/internal/textutil"
)

const bulletPrefix = "- "

// Extractor pulls the ingredient and instruction lines out of a post.
type Extractor struct {
	terms Terms
	stop  stringSet
}

// ExtractorOption customizes an Extractor.
type ExtractorOption func(*Extractor)

// WithInstructionStop ends instruction capture at the first line whose
// normalized form equals one of markers. The stop line itself is excluded.
func WithInstructionStop(markers ...string) ExtractorOption {
	return func(e *Extractor) {
		normalized := normalizeAll(markers)
		if len(normalized) == 0 {
			return
		}
		if e.stop == nil {
			e.stop = stringSet{}
		}
		for _, m := range normalized {
			e.stop[m] = struct{}{}
		}
	}
}

// NewExtractor returns an Extractor using terms.
func NewExtractor(terms Terms, opts ...ExtractorOption) Extractor {
	e := Extractor{terms: terms}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Ingredients returns the lines after the first ingredients marker up to, but
// not including, the next instructions marker. Each line keeps its original
// text behind a "- " bullet; blank and bullet-only entries are dropped.
func (e Extractor) Ingredients(content string) []string {
	lines := strings.Split(content, "\n")
	start := e.findMarker(lines, e.terms.IsIngredientMarker)
	if start < 0 {
		return []string{}
	}
	var out []string
	for _, line := range lines[start+1:] {
		if e.terms.IsInstructionMarker(textutil.Normalize(line)) {
			break
		}
		out = append(out, bulletPrefix+line)
	}
	return cleanEntries(out)
}

// Instructions returns every line after the first instructions marker, bulleted
// like Ingredients. Without a stop marker capture runs to the end of the
// text, so trailing edits and sign-offs are included.
func (e Extractor) Instructions(content string) []string {
	lines := strings.Split(content, "\n")
	start := e.findMarker(lines, e.terms.IsInstructionMarker)
	if start < 0 {
		return []string{}
	}
	var out []string
	for _, line := range lines[start+1:] {
		if len(e.stop) > 0 && e.stop.has(textutil.Normalize(line)) {
			break
		}
		out = append(out, bulletPrefix+line)
	}
	return cleanEntries(out)
}

// IsRecipe is the line-by-line form of Detector.IsRecipe. Each raw line is
// normalized on its own so the extraction policy can diverge from detection.
func (e Extractor) IsRecipe(content string) bool {
	lines := strings.Split(content, "\n")
	return e.findMarker(lines, e.terms.IsIngredientMarker) >= 0 &&
		e.findMarker(lines, e.terms.IsInstructionMarker) >= 0
}

func (e Extractor) findMarker(lines []string, match func(string) bool) int {
	for i, line := range lines {
		if match(textutil.Normalize(line)) {
			return i
		}
	}
	return -1
}

// cleanEntries drops empty entries and the bullet-only leftovers of blank
// lines. An entry of only spaces is dropped too.
func cleanEntries(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch entry {
		case "", "- ", "-  ", " ":
			continue
		}
		if strings.TrimSpace(strings.TrimPrefix(entry, bulletPrefix)) == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
