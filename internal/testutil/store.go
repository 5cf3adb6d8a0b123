package testutil

import (
	"context"
	"testing"

	"github.com/toolhub-ai/toolhub/internal/store"
)

// NewStore creates an in-memory SQLite store with the snapshot schema
// applied. The store is automatically closed when the test completes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background(), store.SnapshotMigrations()); err != nil {
		t.Fatalf("testutil.NewStore: migrate: %v", err)
	}
	return db
}
