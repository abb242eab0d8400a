package chat

import (
	"context"
	"errors"
	"fmt"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/sessions"
	"portfolio-backend/internal/shared/telemetry"
)

// Service implements the chat exchange: greeting short-circuit, prompt
// assembly, completion call, history update.
type Service struct {
	LLM       llm.Client
	Store     sessions.Store
	Resume    *resume.Resume
	Personas  Personas
	Greetings *Greetings
}

// Ask answers a sanitized question within the given session. Greeting
// questions return a canned reply without touching the upstream API or the
// stored history. Completion failures are returned unmapped; the handler
// translates them into the fixed user-facing messages.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (string, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	isNewSession := false
	if err != nil {
		if !errors.Is(err, sessions.ErrNotFound) {
			return "", fmt.Errorf("load session: %w", err)
		}
		isNewSession = true
		sess = sessions.Session{ID: sessionID, History: []sessions.Message{}}
	}

	if IsGreeting(question) {
		return s.Greetings.Random(), nil
	}

	messages := buildMessages(s.Personas, isNewSession, s.Resume.Text(), sess.History, question)

	answer, err := s.LLM.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	sess.Append(question, answer)
	if err := s.Store.Put(ctx, sess); err != nil {
		// A failed history write must not fail the response.
		telemetry.Error("session.save_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return answer, nil
}
