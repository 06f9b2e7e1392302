// Package poller runs the daily sweep over the feed's hot listing.
//
// A cycle lists every hot submission, skips ones already in the ledger or
// younger than the minimum post age, and runs the analyzer pipeline over the
// submission and each of its comments. Detected recipes go through the
// RecipeQueue into the store. A submission id is added to the ledger only
// after its whole comment tree has been swept, so a crash mid-thread replays
// that thread on the next start. On the configured weekday the cycle ends by
// building and publishing the weekly digest.
//
// Run repeats cycles with a fixed sleep between them. A transient feed error
// aborts the cycle and triggers the shorter error backoff; any other error
// stops the loop and is returned to the caller.
package poller
