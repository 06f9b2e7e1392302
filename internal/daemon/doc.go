// Package daemon coordinates the long-running recipewatch process.
//
// It wraps the poll loop in a single lifecycle with flock-based locking so
// two daemons never share one data directory. Start takes the lock and runs
// the loop in the background; Wait returns the loop's terminal error; Stop
// cancels the loop and releases the lock. Status reports what the CLI needs
// to describe a running instance.
//
// Keep orchestration logic here: the sweep itself lives in the poller
// package while the daemon focuses on startup, shutdown and high level
// coordination.
package daemon
