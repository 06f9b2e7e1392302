// Package textutil provides the text normalization and fuzzy matching helpers
// shared by the recipe analyzer.
//
// Normalize is the single normalization policy for marker and keyword
// matching: ASCII punctuation is removed and the remainder lowercased.
// TokenSetRatio scores two strings from 0 to 100 by comparing their sorted
// token sets, so word order and repeated words do not affect the score.
// SanitizeFileName keeps digest labels safe for use as file names.
package textutil
