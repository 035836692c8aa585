package middleware

import (
	"github.com/labstack/echo/v4"
)

// APIVersion represents the API version information
type APIVersion struct {
	Version       string
	LatestVersion string
}

// CurrentAPIVersion holds the current API version info
var CurrentAPIVersion = APIVersion{
	Version:       "1.0.0",
	LatestVersion: "1.0.0",
}

// APIVersionMiddleware adds API version headers to all responses
func APIVersionMiddleware(version APIVersion) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version.Version)
			c.Response().Header().Set("X-API-Latest-Version", version.LatestVersion)
			return next(c)
		}
	}
}
