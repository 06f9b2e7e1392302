// Package preflight provides readiness checks for the filesystem paths and
// external services recipewatch depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll at startup and logs failures as warnings; the
//     poll loop still starts so a transient outage does not block it.
//   - The CLI "recipewatch preflight" command renders every Result as a table
//     and exits non-zero when any check fails.
//
// Publisher checks are gated by the configured publisher kind.
package preflight
