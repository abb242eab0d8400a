package sessions

import "context"

// ErrNotFound is returned when no live session exists for an ID.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "session not found" }

// Store persists session history keyed by session ID. Expired sessions are
// treated as absent. The read-modify-write cycle around a chat exchange is not
// serialized per session; concurrent requests on one session race and the last
// writer wins.
type Store interface {
	Get(ctx context.Context, sessionID string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, sessionID string) error
}
