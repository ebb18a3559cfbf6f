package services

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/masteryhub/mastery-hub-be/internal/database"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }
