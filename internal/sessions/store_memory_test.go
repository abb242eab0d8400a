package sessions

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute, nil)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute, nil)
	sess := Session{ID: "sess-1", History: []Message{{Role: RoleUser, Content: "q"}}}

	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.History) != 1 || got.History[0].Content != "q" {
		t.Fatalf("unexpected history: %+v", got.History)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	// Mutating the returned copy must not leak into the store.
	got.History[0].Content = "mutated"
	again, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if again.History[0].Content != "q" {
		t.Fatalf("store leaked a mutable reference: %q", again.History[0].Content)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10*time.Minute, func() time.Time { return now })

	if err := store.Put(context.Background(), Session{ID: "sess-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Get(context.Background(), "sess-1"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	now = now.Add(10*time.Minute + time.Second)
	_, err := store.Get(context.Background(), "sess-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryStorePutPreservesCreatedAt(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour, func() time.Time { return now })

	if err := store.Put(context.Background(), Session{ID: "sess-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(5 * time.Minute)
	if err := store.Put(context.Background(), Session{ID: "sess-1"}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.CreatedAt.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("CreatedAt changed on update: %v", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt not refreshed: %v", got.UpdatedAt)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Minute, nil)

	if err := store.Put(context.Background(), Session{ID: "sess-1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(context.Background(), "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(context.Background(), "sess-1"); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if _, err := store.Get(context.Background(), "sess-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
