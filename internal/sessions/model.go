package sessions

import "time"

// Message roles as sent to the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxHistory bounds the flat entry count of a session's history.
const MaxHistory = 10

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the per-client conversational state.
type Session struct {
	ID        string    `json:"id"`
	History   []Message `json:"history"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Append records one completed exchange and truncates the history to the most
// recent MaxHistory entries. The bound applies to the flat entry count after
// both appends, so an oversized history is trimmed oldest-first regardless of
// pair boundaries.
func (s *Session) Append(question, answer string) {
	s.History = append(s.History,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}
}
