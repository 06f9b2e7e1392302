// Package digest builds the weekly "top recipes" document.
//
// The window covers [now-8d, now-1d). Recipes in it are ranked by score
// (stable, so equal scores keep store order), rendered one after another with
// a dashed divider, written to the staging directory and handed to a
// publisher. Publisher failures are logged and absorbed so a flaky upload
// never stops the poll loop.
package digest
