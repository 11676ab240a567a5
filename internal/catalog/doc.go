// Package catalog manages the tile inventory a grid renders.
//
// Tiles arrive either from a TOML catalog file (FileProvider) or from the
// SQLite store (Store), both of which satisfy the Provider interface the
// grid consumes. The store owns schema initialization, upserts, ordered
// listing, and transactional imports guarded by a file lock so concurrent
// CLI invocations cannot interleave writes. Name search applies Unicode
// case folding on the Go side rather than relying on SQLite's ASCII-only
// LIKE.
//
// The database is a materialized copy of the catalog file rather than a
// system of record. Schema changes bump the version in schema.go; users
// clear the database and re-import to adopt the new schema.
//
// Treat this package as the single source of truth for tile identity and
// ordering; grids and controllers read descriptors from here and never
// mutate them.
package catalog
