// Package config loads, normalizes, and validates recipewatch configuration.
//
// Configuration is TOML. Load starts from Default(), decodes the file found at
// the explicit path, ~/.config/recipewatch/config.toml or ./recipewatch.toml,
// then applies environment overrides, expands paths and validates every
// section. CreateSample writes the embedded commented sample used by
// `recipewatch config init`.
package config
