package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// asciiPunctuation is the ASCII punctuation set removed by Normalize.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctuationStripper = func() *strings.Replacer {
	pairs := make([]string, 0, len(asciiPunctuation)*2)
	for _, r := range asciiPunctuation {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}()

// Normalize removes ASCII punctuation and lowercases the result. Whitespace,
// including newlines, is preserved so callers can still split on lines.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	stripped := punctuationStripper.Replace(text)
	// cases.Caser is stateful; one per call keeps Normalize goroutine safe.
	return cases.Lower(language.Und).String(stripped)
}

// NormalizedLines normalizes text and splits the result on newlines.
func NormalizedLines(text string) []string {
	return strings.Split(Normalize(text), "\n")
}
