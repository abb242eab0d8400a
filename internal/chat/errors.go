package chat

import (
	"errors"

	"portfolio-backend/internal/llm"
)

// Fixed user-facing messages for upstream failures. The client never sees
// provider detail; the distinction is in the message text only.
const (
	msgInvalidAPIKey   = "Invalid API key. Please check your configuration."
	msgRateLimited     = "Too many requests. Please try again later."
	msgUpstreamServer  = "Server error. Please try again later."
	msgUnexpectedError = "An unexpected error occurred. Please try again later."
)

// upstreamErrorMessage maps a completion-call failure to its fixed user-facing
// message. All of them are served as HTTP 500.
func upstreamErrorMessage(err error) string {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Status == 401:
			return msgInvalidAPIKey
		case statusErr.Status == 429:
			return msgRateLimited
		case statusErr.Status >= 500:
			return msgUpstreamServer
		}
	}
	return msgUnexpectedError
}
