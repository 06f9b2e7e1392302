// Package ledger tracks which feed submissions have been fully processed.
//
// The ledger is append-only. StoreLedger keeps ids in the indexed
// seen_submissions table of the recipe database and is the default. FileLedger
// keeps the historical one-id-per-line text file, loads it fully into memory
// at open, and guards appends with an advisory file lock. Import copies a file
// ledger into any other Ledger.
package ledger
