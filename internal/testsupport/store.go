package testsupport

import (
	"context"
	"fmt"
	"testing"

	"clipgrid/internal/catalog"
	"clipgrid/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Tiles generates n tiles in catalog order without touching storage.
func Tiles(n int) []catalog.Tile {
	tiles := make([]catalog.Tile, 0, n)
	for i := 0; i < n; i++ {
		tiles = append(tiles, catalog.Tile{
			ID:        fmt.Sprintf("tile-%03d", i),
			Name:      fmt.Sprintf("Clip %03d", i),
			SourceURL: fmt.Sprintf("https://cdn.example/clips/%03d.mp4", i),
			Position:  i,
		})
	}
	return tiles
}

// SeedTiles imports n generated tiles and returns them in catalog order.
func SeedTiles(t testing.TB, store *catalog.Store, n int) []catalog.Tile {
	t.Helper()

	tiles := Tiles(n)
	if _, err := store.Import(context.Background(), tiles); err != nil {
		t.Fatalf("store.Import: %v", err)
	}
	return tiles
}
