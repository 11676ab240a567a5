// Package config loads and validates clipgrid's TOML configuration.
//
// Load resolves the config path (explicit flag, then
// ~/.config/clipgrid/config.toml, then ./clipgrid.toml), decodes it over
// Default(), normalizes paths and profile names, and validates the result.
// A missing file is not an error; defaults apply. The embedded
// sample_config.toml documents every key and is written by
// `clipgrid config init`.
//
// Profiles are the unification point for the grid variants: each named
// profile carries the proximity margin, eager mount count, and audio flag
// that distinguish one grid from another. Keep new tunables here rather
// than as constructor parameters so the CLI and tests configure grids the
// same way.
package config
