package chat

import (
	"strings"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/sessions"
)

const followUpClause = "Always conclude responses with an appropriate follow-up unless context clearly requires otherwise."

// Personas holds the configured system-prompt fragments. Base is always used;
// the stage fragment depends on whether the session is new.
type Personas struct {
	Base       string
	Greeting   string
	Subsequent string
}

// systemPrompts builds the two leading system messages: the persona and the
// resume context. The resume text is embedded verbatim, empty when loading
// failed.
func systemPrompts(p Personas, isNewSession bool, resumeText string) []llm.Message {
	stage := p.Subsequent
	if isNewSession {
		stage = p.Greeting
	}

	parts := make([]string, 0, 3)
	if p.Base != "" {
		parts = append(parts, p.Base)
	}
	if stage != "" {
		parts = append(parts, stage)
	}
	parts = append(parts, followUpClause)

	return []llm.Message{
		{Role: sessions.RoleSystem, Content: strings.Join(parts, " ")},
		{Role: sessions.RoleSystem, Content: "Resume: " + resumeText},
	}
}

// buildMessages assembles the full prompt: persona, resume, prior history as
// it stood before this request, then the new question.
func buildMessages(p Personas, isNewSession bool, resumeText string, history []sessions.Message, question string) []llm.Message {
	messages := systemPrompts(p, isNewSession, resumeText)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: sessions.RoleUser, Content: question})
	return messages
}
