package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory with lazy TTL expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore constructs a MemoryStore. A non-positive ttl disables expiry;
// now may be nil for wall-clock time.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return Session{}, ErrNotFound
	}
	return copySession(entry.session), nil
}

func (s *MemoryStore) Put(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[session.ID]
	if !ok {
		session.CreatedAt = now
	} else {
		session.CreatedAt = existing.session.CreatedAt
	}
	session.UpdatedAt = now
	s.sessions[session.ID] = memoryEntry{
		session:   copySession(session),
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func copySession(in Session) Session {
	out := in
	if in.History != nil {
		out.History = make([]Message, len(in.History))
		copy(out.History, in.History)
	}
	return out
}
