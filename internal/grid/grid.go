package grid

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipgrid/internal/audiofocus"
	"clipgrid/internal/catalog"
	"clipgrid/internal/logging"
	"clipgrid/internal/media"
	"clipgrid/internal/poster"
	"clipgrid/internal/tile"
	"clipgrid/internal/viewport"
)

// ErrUnknownTile indicates an operation addressed a tile that is not part
// of the grid's active (filtered) set.
var ErrUnknownTile = errors.New("unknown tile")

// ErrGridClosed indicates an operation on a closed grid.
var ErrGridClosed = errors.New("grid closed")

// Options parameterize a grid. The margin, eager count, and audio flag are
// the three knobs the profile system exposes; the debounce window rides
// along so tests can shrink it.
type Options struct {
	// Margin inflates the viewport for proximity checks, in layout units.
	Margin float64
	// Debounce is the release window applied to every tile. Zero means the
	// tile package default.
	Debounce time.Duration
	// Eager mounts the first N catalog tiles at construction.
	Eager int
	// Audio enables the per-tile audio toggle.
	Audio bool
}

type entry struct {
	tile    catalog.Tile
	ctrl    *tile.Controller
	tracker *viewport.Tracker
}

// Grid composes one lifecycle controller and one visibility tracker per
// catalog tile with a shared audio focus coordinator. The poster cache is
// injected so it can outlive the grid.
type Grid struct {
	id       string
	opts     Options
	loader   media.Loader
	posters  *poster.Cache
	focus    *audiofocus.Coordinator
	base     *slog.Logger
	logger   *slog.Logger
	onSelect func(catalog.Tile)

	mu          sync.Mutex
	catalog     []catalog.Tile
	entries     map[string]*entry
	order       []string
	filter      string
	viewport    viewport.Rect
	hasViewport bool
	closed      bool
}

// New builds a grid over the ordered catalog tiles. onSelect fires when a
// tile body is tapped; it may be nil. The first opts.Eager tiles mount
// immediately.
func New(tiles []catalog.Tile, loader media.Loader, posters *poster.Cache, logger *slog.Logger, opts Options, onSelect func(catalog.Tile)) *Grid {
	if posters == nil {
		posters = poster.NewCache()
	}
	base := logger
	if base == nil {
		base = logging.NewNop()
	}

	id := uuid.NewString()
	g := &Grid{
		id:       id,
		opts:     opts,
		loader:   loader,
		posters:  posters,
		focus:    audiofocus.NewCoordinator(),
		base:     base.With(logging.String(logging.FieldGridID, id)),
		onSelect: onSelect,
		catalog:  append([]catalog.Tile(nil), tiles...),
		entries:  make(map[string]*entry, len(tiles)),
	}
	g.logger = logging.NewComponentLogger(g.base, "grid")

	g.mu.Lock()
	g.rebuildLocked(g.catalog, true)
	g.mu.Unlock()

	g.logger.Info("grid created",
		logging.Int("tiles", len(tiles)),
		logging.Float64("margin", opts.Margin),
		logging.Int("eager", opts.Eager),
		logging.Bool("audio", opts.Audio),
	)
	return g
}

// ID returns the grid session identifier used for log correlation.
func (g *Grid) ID() string {
	return g.id
}

// UpdateViewport records the new viewport rectangle and fans it out to
// every active tracker.
func (g *Grid) UpdateViewport(view viewport.Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.viewport = view
	g.hasViewport = true
	for _, id := range g.order {
		g.entries[id].tracker.ViewportChanged(view)
	}
}

// PlaceTile records a tile's layout rectangle so its tracker can classify
// proximity.
func (g *Grid) PlaceTile(id string, bounds viewport.Rect) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrGridClosed
	}
	ent, ok := g.entries[id]
	if !ok {
		return ErrUnknownTile
	}
	ent.tracker.SetBounds(bounds)
	return nil
}

// SetFilter narrows the active set to tiles whose name matches the query
// (Unicode case-folded substring). Tiles filtered out are destroyed;
// tiles re-entering start unmounted and far until placed again. An empty
// query restores the full catalog.
func (g *Grid) SetFilter(query string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || query == g.filter {
		return
	}
	g.filter = query
	g.rebuildLocked(catalog.FilterByName(g.catalog, query), false)
	g.logger.Debug("filter applied",
		logging.String("query", query),
		logging.Int("matches", len(g.order)),
	)
}

// HandleSelect routes a tap on a tile body to the external selection
// callback. The audio toggle is a separate hit target and never lands
// here.
func (g *Grid) HandleSelect(id string) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrGridClosed
	}
	ent, ok := g.entries[id]
	onSelect := g.onSelect
	g.mu.Unlock()

	if !ok {
		return ErrUnknownTile
	}
	if onSelect != nil {
		onSelect(ent.tile)
	}
	return nil
}

// HandleAudioToggle routes a tap on a tile's audio affordance. It reports
// whether the tile holds focus afterwards. Grids built without audio
// ignore the tap.
func (g *Grid) HandleAudioToggle(id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false, ErrGridClosed
	}
	if !g.opts.Audio {
		g.logger.Debug("audio toggle ignored, grid has audio disabled",
			logging.String(logging.FieldTileID, id))
		return false, nil
	}
	if _, ok := g.entries[id]; !ok {
		return false, ErrUnknownTile
	}

	focused := g.focus.Request(id)
	for _, other := range g.order {
		g.entries[other].ctrl.SyncAudio()
	}
	g.logger.Debug("audio focus changed",
		logging.String(logging.FieldTileID, id),
		logging.Bool("focused", focused),
	)
	return focused, nil
}

// AudioFocus returns the tile currently holding audio, or the empty
// string.
func (g *Grid) AudioFocus() string {
	return g.focus.Active()
}

// ActiveTiles returns the filtered tile list in catalog order.
func (g *Grid) ActiveTiles() []catalog.Tile {
	g.mu.Lock()
	defer g.mu.Unlock()
	tiles := make([]catalog.Tile, 0, len(g.order))
	for _, id := range g.order {
		tiles = append(tiles, g.entries[id].tile)
	}
	return tiles
}

// Controller exposes the lifecycle controller for an active tile.
func (g *Grid) Controller(id string) (*tile.Controller, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ent, ok := g.entries[id]
	if !ok {
		return nil, ErrUnknownTile
	}
	return ent.ctrl, nil
}

// Close destroys every controller whatever state it is in. When it
// returns, no live resources or pending timers remain. Closing twice is a
// no-op.
func (g *Grid) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	entries := make([]*entry, 0, len(g.order))
	for _, id := range g.order {
		entries = append(entries, g.entries[id])
	}
	g.entries = map[string]*entry{}
	g.order = nil
	g.mu.Unlock()

	for _, ent := range entries {
		ent.ctrl.Destroy()
	}
	g.logger.Info("grid closed", logging.Int("tiles", len(entries)))
}

// rebuildLocked reconciles the active set against the given tile list.
// Existing entries that survive keep their controller and tracker; leaving
// entries are destroyed; entering entries start unmounted, except the
// eager prefix during initial construction. Callers must hold g.mu.
func (g *Grid) rebuildLocked(tiles []catalog.Tile, initial bool) {
	keep := make(map[string]bool, len(tiles))
	order := make([]string, 0, len(tiles))

	for i, t := range tiles {
		keep[t.ID] = true
		order = append(order, t.ID)
		if _, exists := g.entries[t.ID]; exists {
			continue
		}

		eager := initial && i < g.opts.Eager
		ctrl := tile.NewController(t, g.loader, g.posters, g.focus, g.base, tile.Options{
			Debounce: g.opts.Debounce,
			Eager:    eager,
		})
		tracker := viewport.NewTracker(g.opts.Margin, ctrl.HandleProximity)
		if g.hasViewport {
			tracker.ViewportChanged(g.viewport)
		}
		g.entries[t.ID] = &entry{tile: t, ctrl: ctrl, tracker: tracker}
	}

	for id, ent := range g.entries {
		if keep[id] {
			continue
		}
		ent.ctrl.Destroy()
		delete(g.entries, id)
	}
	g.order = order
}
