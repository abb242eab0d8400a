package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	XAIAPIKey         string
	LLMModel          string
	ResumePath        string
	SessionSecret     string
	SessionStoreType  string
	SessionTTL        time.Duration
	DatabaseURL       string
	SQLitePath        string
	BasePersona       string
	GreetingPersona   string
	SubsequentPersona string
	GreetingsPath     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:              getEnv("PORT", "5003"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		XAIAPIKey:         os.Getenv("XAI_API_KEY"),
		LLMModel:          getEnv("LLM_MODEL", "grok-beta"),
		ResumePath:        getEnv("RESUME_PATH", "./resume.pdf"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionStoreType:  normalizeStoreType(getEnv("SESSION_STORE", "memory")),
		SessionTTL:        getEnvDuration("SESSION_TTL", 30*time.Minute),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "./sessions.db"),
		BasePersona:       os.Getenv("BASE_PERSONA"),
		GreetingPersona:   os.Getenv("GREETING_PERSONA"),
		SubsequentPersona: os.Getenv("SUBSEQUENT_PERSONA"),
		GreetingsPath:     os.Getenv("GREETINGS_PATH"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "sqlite":
		return "sqlite"
	default:
		return "memory"
	}
}
