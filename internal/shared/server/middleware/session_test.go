package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/auth"
)

func newSessionRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(SessionConfig{Secret: []byte(secret)}))
	r.POST("/api/chat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sessionId": SessionIDFromContext(c),
			"new":       IsNewSessionFromContext(c),
		})
	})
	return r
}

func sessionCookie(resp *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestSessionMintsCookieOnFirstRequest(t *testing.T) {
	r := newSessionRouter("test-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
	if _, err := auth.VerifySessionID(cookie.Value, []byte("test-secret")); err != nil {
		t.Fatalf("cookie value not verifiable: %v", err)
	}
}

func TestSessionReusesValidCookie(t *testing.T) {
	r := newSessionRouter("test-secret")

	req1 := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	cookie := sessionCookie(resp1)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	firstID, err := auth.VerifySessionID(cookie.Value, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify cookie: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req2.AddCookie(cookie)
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)

	if sessionCookie(resp2) != nil {
		t.Fatal("valid cookie must not be reissued")
	}
	if !strings.Contains(resp2.Body.String(), firstID) {
		t.Fatalf("expected session %q reused, got %s", firstID, resp2.Body.String())
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	r := newSessionRouter("test-secret")

	req1 := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	cookie := sessionCookie(resp1)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	originalID, err := auth.VerifySessionID(cookie.Value, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify cookie: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req2.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie.Value + "x"})
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)

	reissued := sessionCookie(resp2)
	if reissued == nil {
		t.Fatal("tampered cookie must be replaced")
	}
	newID, err := auth.VerifySessionID(reissued.Value, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify reissued cookie: %v", err)
	}
	if newID == originalID {
		t.Fatal("tampered cookie must not keep the old session ID")
	}
}
