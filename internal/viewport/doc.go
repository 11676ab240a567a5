// Package viewport computes tile proximity against a scrolling viewport.
//
// A Tracker pairs one tile's bounds with the current viewport rectangle
// and classifies the tile as near or far: near means the bounds intersect
// the viewport inflated by a per-profile margin, so tiles just outside the
// visible area mount before they scroll in. Trackers only react to
// explicit geometry updates and only surface transitions, never steady
// state, which keeps controllers free of polling.
//
// Grids own one tracker per tile and feed every tracker the same viewport
// rectangle on scroll.
package viewport
