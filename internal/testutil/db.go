package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
)

// TestContext returns a context with a generous timeout for test database
// operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// NewTestDB opens an in-memory SQLite database with the full schema applied
// and closes it when the test finishes.
func NewTestDB(t *testing.T) *sqldb.DB {
	t.Helper()

	db, err := sqldb.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
