package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// SnapshotMigrations returns the schema for the catalog snapshot tables.
func SnapshotMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "create catalog snapshot tables",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE catalog_tools (
						id          INTEGER PRIMARY KEY,
						name        TEXT,
						description TEXT,
						category    TEXT,
						price       REAL,
						rating      REAL,
						website_url TEXT,
						image_url   TEXT,
						created_at  TEXT
					);
					CREATE TABLE catalog_meta (
						key   TEXT PRIMARY KEY,
						value TEXT NOT NULL
					);
				`)
				return err
			},
		},
	}
}

// snapshotColumns is the shared column list for snapshot queries.
const snapshotColumns = `id, name, description, category, price, rating,
	website_url, image_url, created_at`

// SnapshotRepository persists the last raw upstream payload. Records are
// stored exactly as received (nullable fields stay null) so the normalizer
// applies the same defaults on reload as on a live fetch.
type SnapshotRepository struct {
	store *Store
	now   func() time.Time
}

// NewSnapshotRepository creates a SnapshotRepository. The snapshot tables
// must already exist (created by SnapshotMigrations). A nil now defaults to
// time.Now.
func NewSnapshotRepository(s *Store, now func() time.Time) *SnapshotRepository {
	if now == nil {
		now = time.Now
	}
	return &SnapshotRepository{store: s, now: now}
}

// Replace atomically swaps the stored snapshot for the given records and
// stamps the fetch time.
func (r *SnapshotRepository) Replace(ctx context.Context, raws []models.RawTool) error {
	return r.store.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_tools`); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}

		for _, raw := range raws {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO catalog_tools (`+snapshotColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				raw.ID, raw.Name, raw.Description, raw.Category,
				raw.Price, raw.Rating, raw.WebsiteURL, raw.ImageURL, raw.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert tool %d: %w", raw.ID, err)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_meta (key, value) VALUES ('fetched_at', ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			r.now().UTC().Format(time.RFC3339),
		)
		return err
	})
}

// Load returns the stored snapshot in insertion (id) order.
func (r *SnapshotRepository) Load(ctx context.Context) ([]models.RawTool, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM catalog_tools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	var raws []models.RawTool
	for rows.Next() {
		var raw models.RawTool
		err := rows.Scan(
			&raw.ID, &raw.Name, &raw.Description, &raw.Category,
			&raw.Price, &raw.Rating, &raw.WebsiteURL, &raw.ImageURL, &raw.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return raws, nil
}

// FetchedAt returns when the stored snapshot was fetched from upstream.
// Returns the zero time when no snapshot has been stored yet.
func (r *SnapshotRepository) FetchedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := r.store.db.QueryRowContext(ctx,
		`SELECT value FROM catalog_meta WHERE key = 'fetched_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("fetched_at: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse fetched_at %q: %w", value, err)
	}
	return ts, nil
}
