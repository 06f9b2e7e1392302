// Package analyzer decides whether a post is a recipe and extracts its parts.
//
// Everything here is rule based and pure: the Detector looks for an
// ingredients marker line and an instructions marker line, the Extractor
// slices the lines that follow each marker, the TitleClassifier fuzzy-matches
// the post against an ordered catalog of recipe titles, and the
// MealTypeClassifier counts meal keywords across the whole thread. Marker and
// keyword lists live in an immutable Terms value shared by all of them.
//
// Pipeline wires the four together for the poller.
package analyzer
