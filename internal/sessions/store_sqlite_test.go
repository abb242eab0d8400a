package sessions

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "sessions.db"), time.Minute)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorePutGetRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	sess := Session{ID: "sess-1", History: []Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	}}

	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "sess-1" {
		t.Fatalf("unexpected id: %q", got.ID)
	}
	if len(got.History) != 2 || got.History[0].Content != "q" || got.History[1].Content != "a" {
		t.Fatalf("unexpected history: %+v", got.History)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestSQLiteStoreUpsertReplacesHistory(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, Session{ID: "sess-1", History: []Message{{Role: RoleUser, Content: "first"}}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, Session{ID: "sess-1", History: []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
	}}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.History) != 2 || got.History[1].Content != "reply" {
		t.Fatalf("unexpected history after upsert: %+v", got.History)
	}
}

func TestSQLiteStoreExpiredSessionNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, Session{ID: "sess-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	expired := time.Now().UTC().Add(-time.Second).Unix()
	if _, err := store.db.ExecContext(ctx, `UPDATE sessions SET expires_at = ? WHERE id = ?`, expired, "sess-1"); err != nil {
		t.Fatalf("expire row: %v", err)
	}

	_, err := store.Get(ctx, "sess-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestSQLiteStoreDeleteIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, Session{ID: "sess-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
