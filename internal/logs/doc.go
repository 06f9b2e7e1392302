// Package logs reads the daemon log file for `recipewatch logs`.
//
// Last returns the final lines of the file with bounded memory and the offset
// to continue from; Follow polls from that offset and restarts at the top
// when the file is truncated or replaced by retention pruning.
package logs
