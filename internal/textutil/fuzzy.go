package textutil

import (
	"math"
	"sort"
	"strings"
)

// TokenSetRatio returns a 0-100 similarity score between a and b based on
// their token sets. Both inputs are reduced to lowercase ASCII letters,
// digits and underscores first; if either side is empty afterwards the
// score is 0.
//
// The score is the best of three pairwise ratios: the sorted intersection
// against each side's intersection-plus-remainder, and the two remainders
// against each other. A string whose tokens are a subset of the other's
// therefore scores 100.
func TokenSetRatio(a, b string) int {
	pa := processForMatch(a)
	pb := processForMatch(b)
	if pa == "" || pb == "" {
		return 0
	}

	setA := tokenSet(pa)
	setB := tokenSet(pb)

	var common, onlyA, onlyB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			common = append(common, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := Ratio(sect, combinedA)
	if r := Ratio(sect, combinedB); r > best {
		best = r
	}
	if r := Ratio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

// Ratio returns round(100 * 2*M / T) where M is the length of the longest
// common subsequence of a and b and T is their combined length. Empty input
// on either side scores 0. Halves round to even.
func Ratio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matches := longestCommonSubsequence(ra, rb)
	return int(math.RoundToEven(100 * float64(2*matches) / float64(total)))
}

func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// processForMatch drops non-ASCII runes, replaces anything that is not a
// letter, digit or underscore with a space, lowercases and trims.
func processForMatch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r > 127:
			continue
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
