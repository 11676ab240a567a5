package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldName normalizes a display name or query for matching: collapse
// whitespace runs, then apply Unicode case folding.
func foldName(value string) string {
	collapsed := strings.Join(strings.Fields(value), " ")
	return cases.Fold().String(collapsed)
}

// FilterByName returns the tiles whose display name contains the query as a
// case-folded substring, preserving catalog order. An empty query returns
// all tiles.
func FilterByName(tiles []Tile, query string) []Tile {
	folded := foldName(query)
	if folded == "" {
		return tiles
	}
	matched := make([]Tile, 0, len(tiles))
	for _, tile := range tiles {
		if strings.Contains(foldName(tile.Name), folded) {
			matched = append(matched, tile)
		}
	}
	return matched
}
