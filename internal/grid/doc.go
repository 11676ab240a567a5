// Package grid assembles tile controllers into a scrollable media grid.
//
// A Grid owns one lifecycle controller and one visibility tracker per
// catalog tile, a grid-wide audio focus coordinator, and a filter over
// tile names. Viewport and placement updates fan out to the trackers,
// which drive each controller independently; no grid operation couples
// one tile's state to another's beyond the single audio focus holder.
// Selection taps and audio-toggle taps are separate entry points so an
// audio tap never fires the selection callback.
//
// The poster cache is injected rather than owned: grids come and go with
// the UI while captured posters persist, which is what lets a reopened
// gallery paint stills instantly. Each grid carries a UUID session ID on
// every log record.
package grid
