package logging

// Standardized structured logging keys shared across packages. Using the
// constants keeps log queries stable when call sites move.
const (
	// FieldComponent names the subsystem emitting the record; the console
	// handler lifts it into the message prefix.
	FieldComponent = "component"
	// FieldTileID identifies the tile a record concerns.
	FieldTileID = "tile_id"
	// FieldGridID carries the grid session identifier for correlation.
	FieldGridID = "grid_id"
	// FieldProfile names the grid profile in effect (dense, gallery, ...).
	FieldProfile = "profile"
	// FieldState carries a tile lifecycle state value.
	FieldState = "state"
	// FieldEventType classifies noteworthy events for log filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step when something degrades.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)
