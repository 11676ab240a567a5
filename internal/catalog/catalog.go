package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTileNotFound indicates a lookup for an unknown tile ID.
var ErrTileNotFound = errors.New("tile not found")

// Tile describes one catalog entry. Descriptors are immutable inputs to the
// grid: controllers read them and never write back.
type Tile struct {
	ID                string
	Name              string
	SourceURL         string
	FallbackPosterURL string
	Category          string
	Position          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the fields a tile must carry to be usable by a grid.
func (t Tile) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("tile id must be set")
	}
	if strings.TrimSpace(t.SourceURL) == "" {
		return fmt.Errorf("tile %s: source_url must be set", t.ID)
	}
	return nil
}

// Provider supplies the ordered tile list a grid renders. The SQLite Store
// and the TOML FileProvider both satisfy it.
type Provider interface {
	List(ctx context.Context) ([]Tile, error)
}
