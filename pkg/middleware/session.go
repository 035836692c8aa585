package middleware

import (
	"net/http"
	"strings"

	"github.com/civicline/repcall/pkg/auth"
	"github.com/labstack/echo/v4"
)

// Context keys set by SessionMiddleware.
const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// SessionMiddleware resolves the optional bearer token into user and
// session identity. Requests without a token pass through anonymously; a
// token that is present but invalid is rejected so a caller never silently
// loses attribution.
func SessionMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "Authorization header must use the Bearer scheme",
				})
			}

			claims, err := auth.ValidateJWT(token, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "Invalid or expired session token",
				})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextSessionID, claims.SessionID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or empty for anonymous requests.
func UserID(c echo.Context) string {
	if v, ok := c.Get(ContextUserID).(string); ok {
		return v
	}
	return ""
}

// SessionID returns the session id, or empty for anonymous requests.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(ContextSessionID).(string); ok {
		return v
	}
	return ""
}
