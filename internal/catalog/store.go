package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"clipgrid/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.CatalogDB
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts the tile or updates an existing row with the same ID.
func (s *Store) Upsert(ctx context.Context, tile Tile) error {
	if err := tile.Validate(); err != nil {
		return err
	}
	if tile.Name == "" {
		tile.Name = tile.ID
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tiles (id, name, source_url, fallback_poster_url, category, position, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             name = excluded.name,
             source_url = excluded.source_url,
             fallback_poster_url = excluded.fallback_poster_url,
             category = excluded.category,
             position = excluded.position,
             updated_at = excluded.updated_at`,
		tile.ID,
		tile.Name,
		tile.SourceURL,
		nullableString(tile.FallbackPosterURL),
		nullableString(tile.Category),
		tile.Position,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert tile %s: %w", tile.ID, err)
	}
	return nil
}

// GetByID returns the tile with the given ID.
func (s *Store) GetByID(ctx context.Context, id string) (*Tile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+tileColumns+" FROM tiles WHERE id = ?", id)
	tile, err := scanTile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tile %s: %w", id, ErrTileNotFound)
		}
		return nil, fmt.Errorf("get tile %s: %w", id, err)
	}
	return tile, nil
}

// List returns all tiles in catalog order.
func (s *Store) List(ctx context.Context) ([]Tile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+tileColumns+" FROM tiles ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("list tiles: %w", err)
	}
	defer rows.Close()

	var tiles []Tile
	for rows.Next() {
		tile, err := scanTile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		tiles = append(tiles, *tile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tiles: %w", err)
	}
	return tiles, nil
}

// Search returns the tiles whose name matches the query, in catalog order.
// Matching uses Unicode case folding in Go rather than SQL LIKE, which is
// ASCII-only in SQLite; the catalog is small enough that this never shows
// up in a profile.
func (s *Store) Search(ctx context.Context, query string) ([]Tile, error) {
	tiles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByName(tiles, query), nil
}

// Count returns the number of catalog entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM tiles").Scan(&count); err != nil {
		return 0, fmt.Errorf("count tiles: %w", err)
	}
	return count, nil
}

// Import upserts the tiles in one transaction, assigning positions from
// slice order when a tile carries none. Returns the number imported.
func (s *Store) Import(ctx context.Context, tiles []Tile) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, tile := range tiles {
		if err := tile.Validate(); err != nil {
			return 0, err
		}
		if tile.Name == "" {
			tile.Name = tile.ID
		}
		if tile.Position == 0 {
			tile.Position = i
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tiles (id, name, source_url, fallback_poster_url, category, position, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)
             ON CONFLICT(id) DO UPDATE SET
                 name = excluded.name,
                 source_url = excluded.source_url,
                 fallback_poster_url = excluded.fallback_poster_url,
                 category = excluded.category,
                 position = excluded.position,
                 updated_at = excluded.updated_at`,
			tile.ID,
			tile.Name,
			tile.SourceURL,
			nullableString(tile.FallbackPosterURL),
			nullableString(tile.Category),
			tile.Position,
			now,
			now,
		); err != nil {
			return 0, fmt.Errorf("import tile %s: %w", tile.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(tiles), nil
}
