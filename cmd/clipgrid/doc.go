// Package main hosts the clipgrid CLI entrypoint and command graph.
//
// The Cobra-based command tree covers catalog maintenance (importing tile
// descriptors from TOML into the sqlite catalog, listing, searching), grid
// simulation sessions that replay scripted scroll interactions through the
// lifecycle machinery, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
