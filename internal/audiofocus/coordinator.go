package audiofocus

import "sync"

// Coordinator tracks which single tile currently owns audio. Focus is
// level state: controllers consult IsFocused when syncing mute rather
// than reacting to edge events, so a missed update cannot leave two tiles
// audible.
type Coordinator struct {
	mu     sync.Mutex
	active string
}

// NewCoordinator returns a coordinator with no audio focus held.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Request toggles focus for the tile: requesting the current holder
// releases focus, requesting any other tile moves focus to it. It reports
// whether the tile holds focus afterwards.
func (c *Coordinator) Request(tileID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == tileID {
		c.active = ""
		return false
	}
	c.active = tileID
	return true
}

// Release drops focus if the tile holds it. Releases from non-holders are
// ignored so a tile being torn down cannot steal focus cleanup from its
// successor.
func (c *Coordinator) Release(tileID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == tileID {
		c.active = ""
	}
}

// IsFocused reports whether the tile currently owns audio.
func (c *Coordinator) IsFocused(tileID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tileID != "" && c.active == tileID
}

// Active returns the focused tile ID, or the empty string when no tile
// holds audio.
func (c *Coordinator) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
