// Command recipewatch runs the recipe-detection daemon and the operator
// commands around it: one-off submission checks, on-demand digests, recipe
// lookups, ledger maintenance, configuration helpers and preflight checks.
package main
