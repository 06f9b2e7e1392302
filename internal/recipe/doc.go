// Package recipe defines the recipe record persisted by the store and rendered
// into the weekly digest.
//
// A Recipe is the flattened combination of PostInfo (who posted it, where, and
// how it scored) and RefinedPost (what the analyzer extracted). Both halves are
// plain values; nothing in this package touches the feed or the database.
package recipe
