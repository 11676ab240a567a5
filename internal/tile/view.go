package tile

import "clipgrid/internal/poster"

// ViewKind says which surface a tile renders.
type ViewKind int

const (
	// ViewLive renders the attached media resource.
	ViewLive ViewKind = iota
	// ViewPoster renders a captured snapshot from the poster cache.
	ViewPoster
	// ViewFallback renders the catalog's fallback poster URL.
	ViewFallback
	// ViewBlank renders an empty placeholder surface.
	ViewBlank
)

// String returns the lowercase kind name used in logs and reports.
func (k ViewKind) String() string {
	switch k {
	case ViewLive:
		return "live"
	case ViewPoster:
		return "poster"
	case ViewFallback:
		return "fallback"
	default:
		return "blank"
	}
}

// View describes what a tile currently renders.
type View struct {
	TileID string
	Kind   ViewKind
	// URL is the media source for live views and the fallback poster URL
	// for fallback views.
	URL string
	// Poster holds the cached snapshot for poster views.
	Poster poster.Snapshot
}

// View resolves the render surface in precedence order: a live resource
// when one is attached (mounted or still releasing), then the cached
// poster, then the fallback poster URL, then blank.
func (c *Controller) View() View {
	c.mu.Lock()
	live := c.res != nil && !c.destroyed
	c.mu.Unlock()

	if live {
		return View{TileID: c.tile.ID, Kind: ViewLive, URL: c.tile.SourceURL}
	}
	if snap, ok := c.posters.Get(c.tile.ID); ok {
		return View{TileID: c.tile.ID, Kind: ViewPoster, Poster: snap}
	}
	if c.tile.FallbackPosterURL != "" {
		return View{TileID: c.tile.ID, Kind: ViewFallback, URL: c.tile.FallbackPosterURL}
	}
	return View{TileID: c.tile.ID, Kind: ViewBlank}
}
