package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clipgrid/internal/catalog"
	"clipgrid/internal/poster"
)

// Script controls how the simulated loader treats one tile.
type Script struct {
	LoadDelay   time.Duration // overrides the loader default when positive
	FailLoad    bool
	RejectPlay  bool
	DenyCapture bool
}

// SimulatedLoader fabricates playback resources without touching real
// media. First frames arrive after a configurable delay and per-tile
// scripts inject the failure modes a real platform produces.
type SimulatedLoader struct {
	defaultDelay time.Duration
	maxDim       int

	mu       sync.Mutex
	scripts  map[string]Script
	live     int
	attaches map[string]int
}

// NewSimulatedLoader returns a loader whose first frames arrive after
// loadDelay and whose captured posters fit within posterMaxDim.
func NewSimulatedLoader(loadDelay time.Duration, posterMaxDim int) *SimulatedLoader {
	return &SimulatedLoader{
		defaultDelay: loadDelay,
		maxDim:       posterMaxDim,
		scripts:      make(map[string]Script),
		attaches:     make(map[string]int),
	}
}

// SetScript installs the failure script for a tile. Set it before the tile
// attaches.
func (l *SimulatedLoader) SetScript(tileID string, script Script) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scripts[tileID] = script
}

// Attach implements Loader.
func (l *SimulatedLoader) Attach(ctx context.Context, tile catalog.Tile, onFirstFrame func(Resource)) (Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	script := l.scripts[tile.ID]
	l.attaches[tile.ID]++
	if script.FailLoad {
		l.mu.Unlock()
		return nil, fmt.Errorf("attach %s: %w", tile.ID, ErrLoadFailed)
	}
	l.live++
	l.mu.Unlock()

	res := &SimulatedResource{
		loader: l,
		tileID: tile.ID,
		script: script,
		muted:  true,
	}

	delay := l.defaultDelay
	if script.LoadDelay > 0 {
		delay = script.LoadDelay
	}
	if onFirstFrame != nil {
		res.mu.Lock()
		res.firstFrame = time.AfterFunc(delay, func() {
			res.mu.Lock()
			closed := res.closed
			res.mu.Unlock()
			if closed {
				return
			}
			onFirstFrame(res)
		})
		res.mu.Unlock()
	}
	return res, nil
}

// LiveCount returns the number of resources attached and not yet closed.
func (l *SimulatedLoader) LiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

// AttachCount returns how many times the tile has been attached, including
// attaches that failed to load.
func (l *SimulatedLoader) AttachCount(tileID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attaches[tileID]
}

func (l *SimulatedLoader) release() {
	l.mu.Lock()
	l.live--
	l.mu.Unlock()
}

// SimulatedResource is the playback handle the simulated loader hands out.
// Tests reach through it to observe playing, mute, and close state.
type SimulatedResource struct {
	loader *SimulatedLoader
	tileID string
	script Script

	mu         sync.Mutex
	closed     bool
	playing    bool
	muted      bool
	firstFrame *time.Timer
}

// TileID implements Resource.
func (r *SimulatedResource) TileID() string {
	return r.tileID
}

// Play implements Resource.
func (r *SimulatedResource) Play() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("play %s: %w", r.tileID, ErrResourceClosed)
	}
	if r.script.RejectPlay {
		return fmt.Errorf("play %s: %w", r.tileID, ErrPlaybackRejected)
	}
	r.playing = true
	return nil
}

// SetMuted implements Resource.
func (r *SimulatedResource) SetMuted(muted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("set muted %s: %w", r.tileID, ErrResourceClosed)
	}
	r.muted = muted
	return nil
}

// CaptureFrame implements Resource.
func (r *SimulatedResource) CaptureFrame() (poster.Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return poster.Snapshot{}, fmt.Errorf("capture %s: %w", r.tileID, ErrResourceClosed)
	}
	deny := r.script.DenyCapture
	r.mu.Unlock()

	if deny {
		return poster.Snapshot{}, fmt.Errorf("capture %s: %w", r.tileID, ErrCaptureDenied)
	}
	return EncodePoster(synthesizeFrame(r.tileID), r.loader.maxDim)
}

// Close implements Resource. Closing twice is a no-op.
func (r *SimulatedResource) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.playing = false
	timer := r.firstFrame
	r.firstFrame = nil
	r.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	r.loader.release()
	return nil
}

// Playing reports whether Play succeeded and the resource is still open.
func (r *SimulatedResource) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Muted reports the current mute state.
func (r *SimulatedResource) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.muted
}

// Closed reports whether the resource has been released.
func (r *SimulatedResource) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
