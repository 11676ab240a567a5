// Package tile implements the per-tile resource lifecycle state machine.
//
// A Controller moves one tile between unmounted, mounted, and releasing in
// response to proximity transitions. Entering the near-zone attaches a
// live media resource and requests playback; leaving it arms a cancellable
// debounce timer so fast scroll flapping never churns decoders; the timer
// completing detaches the resource. The first decoded frame is captured
// into the shared poster cache exactly once per tile, and every absorbed
// failure class (attach, playback start, capture) degrades the tile to a
// poster or placeholder instead of surfacing an error.
//
// Controllers are safe for concurrent use. Timer callbacks and first-frame
// callbacks validate generation counters and resource identity under the
// controller mutex, so events from a canceled release or a detached
// resource fall on the floor.
//
// Destroy is synchronous: when it returns, the resource is closed and no
// timer remains armed. Grids rely on that when tearing down.
package tile
