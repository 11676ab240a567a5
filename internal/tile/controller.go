package tile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"clipgrid/internal/audiofocus"
	"clipgrid/internal/catalog"
	"clipgrid/internal/logging"
	"clipgrid/internal/media"
	"clipgrid/internal/poster"
)

// State is a tile's lifecycle position.
type State int

const (
	// StateUnmounted means no live resource exists; the tile renders a
	// poster or placeholder.
	StateUnmounted State = iota
	// StateMounted means a live resource is attached and playback has been
	// requested.
	StateMounted
	// StateReleasing means the tile left the near-zone and its resource
	// will be detached once the debounce window elapses.
	StateReleasing
)

// String returns the lowercase state name used in logs.
func (s State) String() string {
	switch s {
	case StateMounted:
		return "mounted"
	case StateReleasing:
		return "releasing"
	default:
		return "unmounted"
	}
}

const defaultDebounce = 500 * time.Millisecond

// Options tune one controller.
type Options struct {
	// Debounce is the window between leaving the near-zone and the
	// resource actually detaching. Zero means the 500ms default.
	Debounce time.Duration
	// Eager mounts the tile at construction so above-the-fold tiles skip
	// the flash of placeholder on first paint.
	Eager bool
}

// Controller drives one tile's resource lifecycle from proximity events.
// All transitions are serialized under an internal mutex; callbacks from
// stale resources or canceled timers are recognized and dropped.
type Controller struct {
	tile    catalog.Tile
	loader  media.Loader
	posters *poster.Cache
	focus   *audiofocus.Coordinator
	logger  *slog.Logger

	debounce time.Duration

	mu           sync.Mutex
	state        State
	res          media.Resource
	releaseTimer *time.Timer
	releaseGen   uint64
	destroyed    bool
}

// NewController builds a controller for one tile. posters may be shared
// across grids; a nil focus coordinator keeps the tile permanently muted.
func NewController(t catalog.Tile, loader media.Loader, posters *poster.Cache, focus *audiofocus.Coordinator, logger *slog.Logger, opts Options) *Controller {
	if posters == nil {
		posters = poster.NewCache()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	c := &Controller{
		tile:     t,
		loader:   loader,
		posters:  posters,
		focus:    focus,
		logger:   logging.NewComponentLogger(logger, "tile").With(logging.String(logging.FieldTileID, t.ID)),
		debounce: debounce,
	}

	if opts.Eager {
		c.mu.Lock()
		c.mountLocked()
		c.mu.Unlock()
	}
	return c
}

// Tile returns the descriptor the controller renders.
func (c *Controller) Tile() catalog.Tile {
	return c.tile
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resource returns the live resource, or nil when none is attached.
func (c *Controller) Resource() media.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res
}

// HandleProximity reacts to a near/far transition from the tile's tracker.
func (c *Controller) HandleProximity(near bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}

	if near {
		switch c.state {
		case StateUnmounted:
			c.mountLocked()
		case StateReleasing:
			c.cancelReleaseLocked()
			c.state = StateMounted
			c.logger.Debug("release canceled, tile back in near-zone")
		}
		return
	}

	if c.state == StateMounted {
		c.scheduleReleaseLocked()
	}
}

// SyncAudio forces the resource's mute state to agree with the focus
// coordinator. Grids call it on every focus change; the controller also
// applies it on mount.
func (c *Controller) SyncAudio() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.syncAudioLocked()
}

// Destroy releases the resource and cancels any pending timer, whatever
// state the tile is in. It is synchronous and idempotent.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.cancelReleaseLocked()
	res := c.res
	c.res = nil
	c.state = StateUnmounted
	c.mu.Unlock()

	if res != nil {
		if err := res.Close(); err != nil {
			c.logger.Warn("resource close failed during destroy", logging.Error(err))
		}
	}
	c.logger.Debug("controller destroyed")
}

// mountLocked attaches a live resource and requests playback. Attach and
// playback failures are absorbed: the tile stays mounted and renders its
// fallback until the next remount retries. Callers must hold c.mu.
func (c *Controller) mountLocked() {
	c.state = StateMounted

	res, err := c.loader.Attach(context.Background(), c.tile, c.handleFirstFrame)
	if err != nil {
		c.res = nil
		logging.WarnWithContext(c.logger, "media attach failed", "media_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "tile falls back to poster; remount retries"),
			logging.String(logging.FieldImpact, "tile shows still image instead of video"),
		)
		return
	}
	c.res = res

	if err := res.Play(); err != nil {
		c.logger.Debug("playback not started", logging.Error(err))
	}
	c.syncAudioLocked()
	c.logger.Debug("tile mounted", logging.String(logging.FieldState, c.state.String()))
}

// scheduleReleaseLocked arms the debounce timer. Callers must hold c.mu.
func (c *Controller) scheduleReleaseLocked() {
	c.releaseGen++
	gen := c.releaseGen
	c.state = StateReleasing
	c.releaseTimer = time.AfterFunc(c.debounce, func() {
		c.completeRelease(gen)
	})
	c.logger.Debug("release scheduled", logging.Duration("debounce", c.debounce))
}

// cancelReleaseLocked disarms the pending timer. Bumping the generation
// drops a callback that already fired and is waiting on the mutex. Callers
// must hold c.mu.
func (c *Controller) cancelReleaseLocked() {
	c.releaseGen++
	if c.releaseTimer != nil {
		c.releaseTimer.Stop()
		c.releaseTimer = nil
	}
}

// completeRelease finishes a debounced release if it is still current.
func (c *Controller) completeRelease(gen uint64) {
	c.mu.Lock()
	if c.destroyed || gen != c.releaseGen || c.state != StateReleasing {
		c.mu.Unlock()
		return
	}
	res := c.res
	c.res = nil
	c.releaseTimer = nil
	c.state = StateUnmounted
	c.mu.Unlock()

	if res != nil {
		if err := res.Close(); err != nil {
			c.logger.Warn("resource close failed", logging.Error(err))
		}
	}
	c.logger.Debug("tile released", logging.String(logging.FieldState, StateUnmounted.String()))
}

// handleFirstFrame captures the tile's poster the first time its resource
// decodes a frame. Stale callbacks from resources the controller no longer
// holds are dropped.
func (c *Controller) handleFirstFrame(res media.Resource) {
	c.mu.Lock()
	if c.destroyed || c.res != res {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if _, ok := c.posters.Get(c.tile.ID); ok {
		return
	}
	if _, err := c.posters.Ensure(c.tile.ID, res.CaptureFrame); err != nil {
		logging.WarnWithContext(c.logger, "poster capture failed", "poster_capture_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "tile renders fallback poster or blank surface"),
			logging.String(logging.FieldImpact, "no cached poster for this tile yet"),
		)
		return
	}
	c.logger.Debug("poster captured")
}

// syncAudioLocked applies the coordinator's level state to the resource.
// Callers must hold c.mu.
func (c *Controller) syncAudioLocked() {
	if c.res == nil {
		return
	}
	muted := true
	if c.focus != nil {
		muted = !c.focus.IsFocused(c.tile.ID)
	}
	if err := c.res.SetMuted(muted); err != nil {
		c.logger.Debug("mute sync failed", logging.Error(err))
	}
}
