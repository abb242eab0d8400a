package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCookie is returned when a session cookie fails verification.
var ErrInvalidCookie = errors.New("invalid session cookie")

// SignSessionID returns the signed cookie value for a session ID: the ID
// followed by a base64url HMAC-SHA256 signature.
func SignSessionID(sessionID string, secret []byte) (string, error) {
	if sessionID == "" {
		return "", errors.New("session id is required")
	}
	if len(secret) == 0 {
		return "", errors.New("session secret is required")
	}
	return sessionID + "." + sign(sessionID, secret), nil
}

// VerifySessionID checks a signed cookie value and returns the session ID.
func VerifySessionID(value string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("session secret is required")
	}
	idx := strings.LastIndex(value, ".")
	if idx <= 0 || idx == len(value)-1 {
		return "", ErrInvalidCookie
	}
	sessionID := value[:idx]
	sig := value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(sessionID, secret))) {
		return "", ErrInvalidCookie
	}
	return sessionID, nil
}

func sign(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
