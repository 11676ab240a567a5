package viewport

import "sync"

// Tracker watches one tile's bounds against the viewport and reports
// proximity transitions. A tile is near when its bounds intersect the
// viewport inflated by the configured margin.
//
// Trackers are event driven: proximity is recomputed only when the
// viewport or the tile bounds change, and the callback fires only when the
// near state actually flips. The callback runs with the tracker lock held,
// so it must not call back into the tracker.
type Tracker struct {
	mu          sync.Mutex
	margin      float64
	bounds      Rect
	viewport    Rect
	hasBounds   bool
	hasViewport bool
	near        bool
	onChange    func(near bool)
}

// NewTracker returns a tracker that invokes onChange on every proximity
// transition. Tiles start far; the first evaluation that lands near fires
// the callback.
func NewTracker(margin float64, onChange func(near bool)) *Tracker {
	return &Tracker{margin: margin, onChange: onChange}
}

// SetBounds records the tile's layout rectangle and reevaluates proximity.
func (t *Tracker) SetBounds(bounds Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bounds = bounds
	t.hasBounds = true
	t.reevaluate()
}

// ViewportChanged records the new viewport and reevaluates proximity.
func (t *Tracker) ViewportChanged(view Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.viewport = view
	t.hasViewport = true
	t.reevaluate()
}

// Near reports the current proximity state.
func (t *Tracker) Near() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.near
}

// Margin returns the configured proximity margin.
func (t *Tracker) Margin() float64 {
	return t.margin
}

// reevaluate recomputes proximity and fires the callback on a transition.
// Callers must hold t.mu.
func (t *Tracker) reevaluate() {
	if !t.hasBounds || !t.hasViewport {
		return
	}
	near := t.bounds.Intersects(t.viewport.Inflate(t.margin))
	if near == t.near {
		return
	}
	t.near = near
	if t.onChange != nil {
		t.onChange(near)
	}
}
