package catalog

import (
	"database/sql"
	"errors"
	"time"
)

const tileColumns = "id, name, source_url, fallback_poster_url, category, position, created_at, updated_at"

func scanTile(scanner interface{ Scan(dest ...any) error }) (*Tile, error) {
	var (
		id         string
		name       sql.NullString
		sourceURL  string
		fallback   sql.NullString
		category   sql.NullString
		position   sql.NullInt64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&sourceURL,
		&fallback,
		&category,
		&position,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	tile := &Tile{
		ID:                id,
		Name:              name.String,
		SourceURL:         sourceURL,
		FallbackPosterURL: fallback.String,
		Category:          category.String,
		Position:          int(position.Int64),
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		tile.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		tile.UpdatedAt = updated
	}
	return tile, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
