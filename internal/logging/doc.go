// Package logging assembles structured slog loggers and formatting helpers used
// across recipewatch.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so poller code can tag log lines
// with the cycle correlation id and the submission being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
