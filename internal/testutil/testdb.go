package testutil

import (
	"database/sql"
	"testing"

	"github.com/path2action/planwizard/internal/db"
)

// NewTestDB creates a fresh in-memory cache database for testing.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}
