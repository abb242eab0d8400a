package llm

import (
	"context"
	"fmt"
)

// Message is one chat turn sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// StatusError describes a non-2xx reply from the completion API. The body is
// kept for server-side logging; it must never reach the client.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion api status %d", e.Status)
}
