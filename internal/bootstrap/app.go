package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/llm/xai"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/services/health"
	"portfolio-backend/internal/sessions"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server"
	"portfolio-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	DB          *sql.DB
	Sessions    sessions.Store
	Resume      *resume.Resume
	LLM         llm.Client
	ChatService *chat.Service
	ChatHandler *chat.Handler
	HealthSvc   *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.Env == "production" && strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, fmt.Errorf("SESSION_SECRET required in production")
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	app.Resume = resume.Load(cfg.ResumePath)

	store, sqlDB, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Sessions = store
	app.DB = sqlDB

	llmClient, err := xai.NewClient(cfg.XAIAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	app.ChatService = &chat.Service{
		LLM:    app.LLM,
		Store:  app.Sessions,
		Resume: app.Resume,
		Personas: chat.Personas{
			Base:       cfg.BasePersona,
			Greeting:   cfg.GreetingPersona,
			Subsequent: cfg.SubsequentPersona,
		},
		Greetings: chat.LoadGreetings(cfg.GreetingsPath, nil),
	}
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.HealthSvc = health.NewService()

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		ChatHandler: app.ChatHandler,
		HealthSvc:   app.HealthSvc,
	})

	return app, nil
}

func buildSessionStore(ctx context.Context, cfg config.Config) (sessions.Store, *sql.DB, error) {
	switch cfg.SessionStoreType {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: DATABASE_URL empty; using in-memory session store")
				return sessions.NewMemoryStore(cfg.SessionTTL, nil), nil, nil
			}
			return nil, nil, fmt.Errorf("SESSION_STORE=postgres requires DATABASE_URL")
		}
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database connect failed; using in-memory session store: %v", err)
				return sessions.NewMemoryStore(cfg.SessionTTL, nil), nil, nil
			}
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return &sessions.PGStore{DB: sqlDB, TTL: cfg.SessionTTL}, sqlDB, nil
	case "sqlite":
		store, err := sessions.NewSQLiteStore(ctx, cfg.SQLitePath, cfg.SessionTTL)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: sqlite open failed; using in-memory session store: %v", err)
				return sessions.NewMemoryStore(cfg.SessionTTL, nil), nil, nil
			}
			return nil, nil, err
		}
		return store, nil, nil
	default:
		return sessions.NewMemoryStore(cfg.SessionTTL, nil), nil, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
