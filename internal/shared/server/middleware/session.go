package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/shared/auth"
)

const (
	sessionIDKey  = "sessionId"
	newSessionKey = "newSession"

	// SessionCookieName is the cookie carrying the signed session ID.
	SessionCookieName = "sid"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// SessionConfig configures the signed session cookie middleware.
type SessionConfig struct {
	Secret []byte
	// Secure controls the cookie Secure attribute; true in production.
	Secure bool
}

// Session resolves the client's session ID from the signed cookie, minting a
// fresh one when the cookie is missing or fails verification. The ID is stored
// in the gin context for handlers; actual history persistence is the store's
// concern.
func Session(cfg SessionConfig) gin.HandlerFunc {
	secret := cfg.Secret
	if len(secret) == 0 {
		secret = []byte("dev-secret")
	}
	return func(c *gin.Context) {
		isNew := false
		sessionID := ""

		if raw, err := c.Cookie(SessionCookieName); err == nil && strings.TrimSpace(raw) != "" {
			if id, verr := auth.VerifySessionID(raw, secret); verr == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			isNew = true
			if signed, err := auth.SignSessionID(sessionID, secret); err == nil {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(SessionCookieName, signed, sessionCookieMaxAge, "/", "", cfg.Secure, true)
			}
		}

		c.Set(sessionIDKey, sessionID)
		c.Set(newSessionKey, isNew)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// IsNewSessionFromContext reports whether the session ID was minted for this
// request.
func IsNewSessionFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(newSessionKey)
	isNew, _ := val.(bool)
	return isNew
}
