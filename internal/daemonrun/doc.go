// Package daemonrun wires configuration, logging, storage, the feed client,
// the analyzer pipeline, the digest builder and the poll loop into a
// running daemon for `recipewatch run`.
package daemonrun
