package chat

import (
	_ "embed"
	"encoding/json"
	"math/rand"
	"os"
	"strings"
	"sync"

	"portfolio-backend/internal/shared/telemetry"
)

//go:embed greetings.json
var defaultGreetingsJSON []byte

// greetingPrefixes is the fixed set of tokens that trigger the greeting
// short-circuit. A literal prefix check, not an intent classifier.
var greetingPrefixes = []string{"hi", "hello", "hola", "howdy", "hey"}

// IsGreeting reports whether the trimmed, lowercased question starts with one
// of the greeting tokens.
func IsGreeting(question string) bool {
	normalized := strings.ToLower(strings.TrimSpace(question))
	for _, prefix := range greetingPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

// Greetings is the configured list of canned greeting replies.
type Greetings struct {
	mu      sync.Mutex
	replies []string
	rng     *rand.Rand
}

type greetingsFile struct {
	Greetings []string `json:"greetings"`
}

// LoadGreetings returns the greeting list from path, falling back to the
// embedded defaults when path is empty or unreadable.
func LoadGreetings(path string, rng *rand.Rand) *Greetings {
	raw := defaultGreetingsJSON
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			telemetry.Error("greetings.load_failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		} else {
			raw = data
		}
	}

	var parsed greetingsFile
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Greetings) == 0 {
		_ = json.Unmarshal(defaultGreetingsJSON, &parsed)
	}

	return &Greetings{replies: parsed.Greetings, rng: rng}
}

// Random returns one greeting chosen uniformly at random.
func (g *Greetings) Random() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.replies) == 0 {
		return ""
	}
	if g.rng != nil {
		return g.replies[g.rng.Intn(len(g.replies))]
	}
	return g.replies[rand.Intn(len(g.replies))]
}

// Contains reports whether reply is one of the configured greetings.
func (g *Greetings) Contains(reply string) bool {
	for _, r := range g.replies {
		if r == reply {
			return true
		}
	}
	return false
}
