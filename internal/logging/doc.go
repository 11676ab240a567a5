// Package logging builds the slog loggers used across clipgrid and defines
// the shared structured logging vocabulary.
//
// New constructs a logger from Options (level, console or json format, one
// or more output paths); the console handler renders one line per record
// with the component attribute lifted into the message prefix and remaining
// attributes as key=value pairs. NewComponentLogger and NewNop keep
// collaborators decoupled from logger plumbing: any package that accepts a
// *slog.Logger treats nil as "log nothing".
//
// Use the Field* constants for attribute keys instead of inline strings so
// log filters stay stable as call sites move.
package logging
