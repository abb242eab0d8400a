package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/telemetry"
)

// FieldError describes a single failed validation on the request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error sends a JSON error response with a single user-facing message.
// Upstream detail stays in the server-side log only.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ValidationErrors sends a 400 response listing the failed fields.
func ValidationErrors(c *gin.Context, errs []FieldError) {
	telemetry.Error("http.validation_error", map[string]any{
		"status":     http.StatusBadRequest,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
		"fields":     len(errs),
	})

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
}
