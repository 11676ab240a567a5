// Package logs provides file tailing helpers for the CLI.
//
// It reads log files with bounded memory usage, supports negative offsets
// for "tail last N lines" operations, and powers follow-mode updates for
// `clipgrid logs --follow`. Callers supply contexts so polling shuts down
// cleanly when the CLI exits.
package logs
