package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civicline/repcall/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func runSession(t *testing.T, authorization string) (*httptest.ResponseRecorder, string, string) {
	e := echo.New()
	var userID, sessionID string

	handler := SessionMiddleware(testSecret)(func(c echo.Context) error {
		userID = UserID(c)
		sessionID = SessionID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec, userID, sessionID
}

func TestSessionMiddlewareAnonymous(t *testing.T) {
	rec, userID, sessionID := runSession(t, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
	assert.Empty(t, sessionID)
}

func TestSessionMiddlewareValidToken(t *testing.T) {
	token, err := auth.GenerateJWT("alice", "session-1", testSecret, 24)
	require.NoError(t, err)

	rec, userID, sessionID := runSession(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", userID)
	assert.Equal(t, "session-1", sessionID)
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	rec, _, _ := runSession(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddlewareWrongScheme(t *testing.T) {
	rec, _, _ := runSession(t, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2)

	e := echo.New()
	handler := rl.RateLimitMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
