// Package store persists recipes and the seen-submission ledger in SQLite.
//
// The recipes table is keyed by post id: Insert is add-if-absent and reports
// whether a row was written, so a repeated insert is a logged no-op. Ingredient
// and instruction lists are stored as ";"-joined text. TimeWindow and ByAuthor
// return rows in insertion order and skip rows that no longer decode, logging
// a warning for each.
//
// The seen_submissions table backs the SQLite ledger with an indexed lookup.
package store
