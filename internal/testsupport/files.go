package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipgrid/internal/catalog"
)

// WriteCatalogFile renders the tiles as a TOML catalog at path, creating
// parent directories as needed.
func WriteCatalogFile(t testing.TB, path string, tiles []catalog.Tile) {
	t.Helper()

	type entry struct {
		ID                string `toml:"id"`
		Name              string `toml:"name,omitempty"`
		SourceURL         string `toml:"source_url"`
		FallbackPosterURL string `toml:"fallback_poster_url,omitempty"`
		Category          string `toml:"category,omitempty"`
		Position          int    `toml:"position,omitempty"`
	}
	var doc struct {
		Tiles []entry `toml:"tiles"`
	}
	for _, tile := range tiles {
		doc.Tiles = append(doc.Tiles, entry{
			ID:                tile.ID,
			Name:              tile.Name,
			SourceURL:         tile.SourceURL,
			FallbackPosterURL: tile.FallbackPosterURL,
			Category:          tile.Category,
			Position:          tile.Position,
		})
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
