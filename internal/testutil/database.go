// Package testutil provides shared test helpers: isolated databases, catalog
// fixtures and deterministic collaborators for the recommendation pipeline.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/service"
	"github.com/Veraticus/stylist/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory database that is closed when
// the test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Records        []model.RecommendationRecord
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for i := range opts.Records {
		if err := store.SaveRecommendation(ctx, &opts.Records[i]); err != nil {
			t.Fatalf("failed to seed recommendation %q: %v", opts.Records[i].ID, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustRecent returns the shop's most recent records or fails the test.
func (db *TestDB) MustRecent(shopID string, limit int) []model.RecommendationRecord {
	db.t.Helper()
	records, err := db.Storage.GetRecentRecommendations(context.Background(), shopID, limit)
	if err != nil {
		db.t.Fatalf("failed to read history: %v", err)
	}
	return records
}
