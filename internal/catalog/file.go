package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// catalogFile mirrors the on-disk TOML layout.
type catalogFile struct {
	Tiles []tileEntry `toml:"tiles"`
}

type tileEntry struct {
	ID                string `toml:"id"`
	Name              string `toml:"name"`
	SourceURL         string `toml:"source_url"`
	FallbackPosterURL string `toml:"fallback_poster_url"`
	Category          string `toml:"category"`
	Position          int    `toml:"position"`
}

// LoadFile reads a TOML tile catalog. Entries must carry unique IDs and a
// source URL; names default to the ID and positions to file order.
func LoadFile(path string) ([]Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var parsed catalogFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(parsed.Tiles))
	tiles := make([]Tile, 0, len(parsed.Tiles))
	for i, entry := range parsed.Tiles {
		tile := Tile{
			ID:                strings.TrimSpace(entry.ID),
			Name:              strings.TrimSpace(entry.Name),
			SourceURL:         strings.TrimSpace(entry.SourceURL),
			FallbackPosterURL: strings.TrimSpace(entry.FallbackPosterURL),
			Category:          strings.TrimSpace(entry.Category),
			Position:          entry.Position,
		}
		if err := tile.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		if _, dup := seen[tile.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate tile id %q", i+1, tile.ID)
		}
		seen[tile.ID] = struct{}{}

		if tile.Name == "" {
			tile.Name = tile.ID
		}
		if tile.Position == 0 {
			tile.Position = i
		}
		tiles = append(tiles, tile)
	}
	return tiles, nil
}

// FileProvider serves tiles straight from a TOML catalog file, re-reading it
// on every List call so edits show up without a restart.
type FileProvider struct {
	path string
}

// NewFileProvider returns a provider backed by the given catalog file.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// List implements Provider.
func (p *FileProvider) List(_ context.Context) ([]Tile, error) {
	return LoadFile(p.path)
}
