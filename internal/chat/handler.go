package chat

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
	"portfolio-backend/internal/shared/telemetry"
)

// Handler wires the chat endpoint to the chat service.
type Handler struct {
	Svc      *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		Svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Question string `json:"question" validate:"required"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationErrors(c, []respond.FieldError{
			{Field: "question", Message: "question must be a string"},
		})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.ValidationErrors(c, []respond.FieldError{
			{Field: "question", Message: "question is required"},
		})
		return
	}

	question := sanitizeQuestion(req.Question)
	sessionID := middleware.SessionIDFromContext(c)

	answer, err := h.Svc.Ask(c.Request.Context(), sessionID, question)
	if err != nil {
		fields := map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"session_id": sessionID,
			"error":      err.Error(),
		}
		event := "chat.failed"
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			event = "chat.upstream_error"
			fields["upstream_status"] = statusErr.Status
			fields["upstream_body"] = statusErr.Body
		}
		telemetry.Error(event, fields)
		respond.Error(c, http.StatusInternalServerError, upstreamErrorMessage(err))
		return
	}

	respond.OK(c, gin.H{
		"answer":    answer,
		"sessionId": sessionID,
	})
}

// sanitizeQuestion mirrors the trim + escape sanitizers applied to the
// question field.
func sanitizeQuestion(q string) string {
	return html.EscapeString(strings.TrimSpace(q))
}
