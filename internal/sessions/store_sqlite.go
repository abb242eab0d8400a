package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register pure-Go sqlite driver
)

// SQLiteStore persists sessions in a local SQLite file. Suited to single-node
// deployments where running Postgres is not worth it.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// sessions table exists.
func NewSQLiteStore(ctx context.Context, path string, ttl time.Duration) (*SQLiteStore, error) {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    history TEXT NOT NULL DEFAULT '[]',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL
)`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SQLiteStore{db: conn, ttl: ttl}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, history, created_at, updated_at
FROM sessions
WHERE id = ? AND expires_at > ?
LIMIT 1`
	var sess Session
	var rawHistory string
	var createdAt, updatedAt int64
	err := s.db.QueryRowContext(ctx, query, sessionID, time.Now().UTC().Unix()).Scan(
		&sess.ID,
		&rawHistory,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if rawHistory != "" {
		if err := json.Unmarshal([]byte(rawHistory), &sess.History); err != nil {
			return Session{}, err
		}
	}
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	sess.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return sess, nil
}

func (s *SQLiteStore) Put(ctx context.Context, session Session) error {
	history := session.History
	if history == nil {
		history = []Message{}
	}
	rawHistory, err := json.Marshal(history)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Unix()
	expiresAt := time.Now().UTC().Add(s.ttl).Unix()
	const query = `
INSERT INTO sessions (id, history, created_at, updated_at, expires_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
  history = excluded.history,
  updated_at = excluded.updated_at,
  expires_at = excluded.expires_at`
	_, err = s.db.ExecContext(ctx, query, session.ID, string(rawHistory), now, now, expiresAt)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM sessions WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, sessionID)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
