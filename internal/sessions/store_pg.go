package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGStore persists sessions in Postgres with history as JSONB.
type PGStore struct {
	DB  *sql.DB
	TTL time.Duration
}

func (s *PGStore) Get(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, history, created_at, updated_at
FROM sessions
WHERE id = $1 AND expires_at > now()
LIMIT 1`
	var sess Session
	var rawHistory []byte
	err := s.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&sess.ID,
		&rawHistory,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if len(rawHistory) > 0 {
		if err := json.Unmarshal(rawHistory, &sess.History); err != nil {
			return Session{}, err
		}
	}
	return sess, nil
}

func (s *PGStore) Put(ctx context.Context, session Session) error {
	history := session.History
	if history == nil {
		history = []Message{}
	}
	rawHistory, err := json.Marshal(history)
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.ttl())
	const query = `
INSERT INTO sessions (id, history, created_at, updated_at, expires_at)
VALUES ($1, $2, now(), now(), $3)
ON CONFLICT (id) DO UPDATE SET
  history = EXCLUDED.history,
  updated_at = now(),
  expires_at = EXCLUDED.expires_at`
	_, err = s.DB.ExecContext(ctx, query, session.ID, rawHistory, expiresAt)
	return err
}

func (s *PGStore) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	_, err := s.DB.ExecContext(ctx, query, sessionID)
	return err
}

func (s *PGStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Minute
}
