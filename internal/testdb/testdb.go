// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/investmatch/investmatch/infrastructure/persistence"
	"github.com/investmatch/investmatch/internal/database"
)

// New creates an in-memory SQLite database with every table migrated.
// The database is closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb.New: auto migrate: %v", err)
	}
	return db
}

// Seeded creates a migrated database loaded with the bundled demo fixture.
func Seeded(t *testing.T) database.Database {
	t.Helper()
	db := New(t)
	f, err := persistence.DefaultFixture()
	if err != nil {
		t.Fatalf("testdb.Seeded: fixture: %v", err)
	}
	if _, err := persistence.Seed(context.Background(), db, f); err != nil {
		t.Fatalf("testdb.Seeded: seed: %v", err)
	}
	return db
}
