package sqlite_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/mesocycle/internal/sqlite"
	"github.com/myrjola/mesocycle/internal/testhelpers"
)

func newTestDatabase(t *testing.T) *sqlite.Database {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func TestDatabase_Documents(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newTestDatabase(t)

	if _, err := db.GetDocument(ctx, "workout"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Fatalf("GetDocument on empty store: got %v, want ErrNotFound", err)
	}

	first := sqlite.Document{
		Store:     "workout",
		Data:      []byte(`{"history":[]}`),
		UpdatedAt: time.Date(2025, 3, 3, 8, 30, 0, 123_000_000, time.UTC),
	}
	if err := db.PutDocument(ctx, first); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	second := first
	second.Data = []byte(`{"history":[{"id":"a"}]}`)
	second.UpdatedAt = first.UpdatedAt.Add(time.Minute)
	if err := db.PutDocument(ctx, second); err != nil {
		t.Fatalf("PutDocument replace: %v", err)
	}

	got, err := db.GetDocument(ctx, "workout")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("GetDocument mismatch (-want +got):\n%s", diff)
	}
}

func TestDatabase_PutDocument_rejectsInvalid(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newTestDatabase(t)
	now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		doc  sqlite.Document
	}{
		{name: "unknown store", doc: sqlite.Document{Store: "users", Data: []byte(`{}`), UpdatedAt: now}},
		{name: "invalid json", doc: sqlite.Document{Store: "badges", Data: []byte(`{`), UpdatedAt: now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.PutDocument(ctx, tt.doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDatabase_SyncState(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newTestDatabase(t)
	pulled := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	pushed := pulled.Add(time.Second)

	if err := db.RecordPull(ctx, "workout_data", pulled, nil); err != nil {
		t.Fatalf("RecordPull: %v", err)
	}
	if err := db.RecordPush(ctx, "workout_data", pushed, nil); err != nil {
		t.Fatalf("RecordPush: %v", err)
	}
	// A failed push keeps the last successful timestamp.
	if err := db.RecordPush(ctx, "workout_data", pushed.Add(time.Hour), errors.New("connection refused")); err != nil {
		t.Fatalf("RecordPush failure: %v", err)
	}
	if err := db.RecordPull(ctx, "badge_data", pulled, nil); err != nil {
		t.Fatalf("RecordPull: %v", err)
	}

	got, err := db.SyncStates(ctx)
	if err != nil {
		t.Fatalf("SyncStates: %v", err)
	}
	want := []sqlite.SyncState{
		{RemoteTable: "badge_data", LastPulledAt: &pulled, LastPushedAt: nil, LastError: ""},
		{RemoteTable: "workout_data", LastPulledAt: &pulled, LastPushedAt: &pushed, LastError: "connection refused"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SyncStates mismatch (-want +got):\n%s", diff)
	}
}

func TestDatabase_Export(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newTestDatabase(t)
	at := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	for _, store := range []string{"workout", "settings"} {
		if err := db.PutDocument(ctx, sqlite.Document{Store: store, Data: []byte(`{}`), UpdatedAt: at}); err != nil {
			t.Fatalf("PutDocument: %v", err)
		}
	}

	dir := t.TempDir()
	path, err := db.Export(ctx, dir, at)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err = db.Export(ctx, dir, at); err == nil {
		t.Error("expected second export to the same path to fail")
	}

	exported, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer exported.Close()
	var count int
	if err = exported.QueryRowContext(ctx, "SELECT COUNT(*) FROM store_documents").Scan(&count); err != nil {
		t.Fatalf("count exported documents: %v", err)
	}
	if count != 2 {
		t.Errorf("exported documents: got %d, want 2", count)
	}
}
