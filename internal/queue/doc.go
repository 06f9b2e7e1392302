// Package queue buffers extracted recipes between the poll loop and the
// store.
//
// RecipeQueue is a LIFO stack that drains completely on every Add, so in
// steady state it holds nothing. A record that fails to persist stays on the
// stack and is retried by the next Add or Flush. The store remains the
// single source of truth for deduplication.
package queue
