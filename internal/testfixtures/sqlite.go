package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/roombooking/internal/persistence/sqlstore"
	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewStore opens a SQLite store in a temporary file and migrates it to head.
// The store is closed when the test finishes.
func NewStore(tb testing.TB) *sqlstore.Store {
	tb.Helper()

	cfg := sqlstore.DefaultConfig()
	cfg.DSN = filepath.Join(tb.TempDir(), "roombooking.db")

	ctx := context.Background()
	store, err := sqlstore.Open(ctx, cfg, DiscardLogger())
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}
	tb.Cleanup(func() {
		_ = store.Close()
	})

	migrator, err := store.Migrator(DiscardLogger())
	if err != nil {
		tb.Fatalf("failed to build migrator: %v", err)
	}
	if err := migrator.Upgrade(ctx, migration.Head); err != nil {
		tb.Fatalf("failed to migrate store: %v", err)
	}
	return store
}
