package migration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "migrate.db") + "?_pragma=foreign_keys(1)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestManager(t *testing.T, db *sqlx.DB) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager, err := NewManager(NewSQLExecutor(db, DialectSQLite), Revisions(), logger)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	return manager
}

func columnNames(t *testing.T, db *sqlx.DB, table string) map[string]bool {
	t.Helper()
	var names []string
	if err := db.Select(&names, "SELECT name FROM pragma_table_info(?)", table); err != nil {
		t.Fatalf("table info for %s: %v", table, err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func TestManager_UpgradeAndDowngrade(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := newTestManager(t, db)

	current, err := manager.Current(ctx)
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if current != "" {
		t.Fatalf("expected empty database at base, got %q", current)
	}

	if err := manager.Upgrade(ctx, Head); err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	if current, _ = manager.Current(ctx); current != "af8e4f84b552" {
		t.Fatalf("expected head revision, got %q", current)
	}

	events := columnNames(t, db, "events")
	for _, col := range []string{"number_of_participants", "recurring_event_id", "event_title"} {
		if !events[col] {
			t.Fatalf("expected events.%s after upgrade", col)
		}
	}
	if !columnNames(t, db, "rooms")["next_sync_token"] {
		t.Fatalf("expected rooms.next_sync_token after upgrade")
	}
	if !columnNames(t, db, "devices")["state"] {
		t.Fatalf("expected devices.state after upgrade")
	}

	if err := manager.Downgrade(ctx, "b51ed27a84de"); err != nil {
		t.Fatalf("Downgrade returned error: %v", err)
	}
	if current, _ = manager.Current(ctx); current != "b51ed27a84de" {
		t.Fatalf("expected b51ed27a84de, got %q", current)
	}
	if len(columnNames(t, db, "devices")) != 0 {
		t.Fatalf("expected devices table to be dropped")
	}

	if err := manager.Downgrade(ctx, "3974dfade8f7"); err != nil {
		t.Fatalf("Downgrade returned error: %v", err)
	}
	events = columnNames(t, db, "events")
	if events["number_of_participants"] || events["recurring_event_id"] {
		t.Fatalf("expected added event columns to be dropped, got %v", events)
	}
	if columnNames(t, db, "rooms")["next_sync_token"] {
		t.Fatalf("expected rooms.next_sync_token to be dropped")
	}

	if err := manager.Downgrade(ctx, Base); err != nil {
		t.Fatalf("Downgrade to base returned error: %v", err)
	}
	if current, _ = manager.Current(ctx); current != "" {
		t.Fatalf("expected base, got %q", current)
	}
	if len(columnNames(t, db, "locations")) != 0 {
		t.Fatalf("expected locations table to be dropped")
	}
}

func TestManager_UpgradePreservesEventRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := newTestManager(t, db)

	if err := manager.Upgrade(ctx, "3974dfade8f7"); err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	db.MustExec(`INSERT INTO locations (name, abbreviation, country, time_zone) VALUES ('Lagos', 'LOS', 'Nigeria', 'Africa/Lagos')`)
	db.MustExec(`INSERT INTO rooms (name, room_type, capacity, location_id) VALUES ('Oculus', 'meeting', 8, 1)`)
	db.MustExec(`INSERT INTO events (event_id, room_id, event_title, start_time, end_time) VALUES ('evt-1', 1, 'Standup', '2024-01-02 09:00:00', '2024-01-02 09:15:00')`)

	if err := manager.Upgrade(ctx, "b51ed27a84de"); err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}

	var participants int
	if err := db.Get(&participants, `SELECT number_of_participants FROM events WHERE event_id = 'evt-1'`); err != nil {
		t.Fatalf("select event: %v", err)
	}
	if participants != 0 {
		t.Fatalf("expected default participants 0, got %d", participants)
	}

	db.MustExec(`INSERT INTO events (event_id, room_id, start_time, end_time) VALUES ('evt-2', 1, '2024-01-02 10:00:00', '2024-01-02 10:30:00')`)
}

func TestManager_Status(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, openTestDB(t))

	if err := manager.Upgrade(ctx, "b51ed27a84de"); err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	status, err := manager.Status(ctx)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.Current != "b51ed27a84de" || status.Head != "af8e4f84b552" {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(status.Applied) != 2 || len(status.Pending) != 2 || status.UpToDate() {
		t.Fatalf("unexpected applied/pending split: %d/%d", len(status.Applied), len(status.Pending))
	}
}

func TestManager_RejectsWrongDirection(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, openTestDB(t))

	if err := manager.Upgrade(ctx, Head); err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	if err := manager.Upgrade(ctx, "3974dfade8f7"); !errors.Is(err, ErrWrongDirection) {
		t.Fatalf("expected ErrWrongDirection, got %v", err)
	}
	if err := manager.Upgrade(ctx, "nope"); !errors.Is(err, ErrUnknownRevision) {
		t.Fatalf("expected ErrUnknownRevision, got %v", err)
	}
	if err := manager.Upgrade(ctx, Head); err != nil {
		t.Fatalf("expected upgrade at head to be a no-op, got %v", err)
	}
}

type failingExecutor struct {
	current string
}

func (f *failingExecutor) InitializeVersionTable(context.Context) error { return nil }

func (f *failingExecutor) CurrentRevision(context.Context) (string, error) { return f.current, nil }

func (f *failingExecutor) ApplyStep(_ context.Context, m Migration, _ Direction, _ string) error {
	return NewDatabaseError(m.Revision, "", "execute", errors.New("boom"))
}

func TestManager_WrapsStepFailures(t *testing.T) {
	manager, err := NewManager(&failingExecutor{}, Revisions(), nil)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	err = manager.Upgrade(context.Background(), Head)
	if !errors.Is(err, ErrMigrationFailed) {
		t.Fatalf("expected ErrMigrationFailed, got %v", err)
	}
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) || dbErr.Revision != "3974dfade8f7" {
		t.Fatalf("expected DatabaseError for first revision, got %v", err)
	}
}
