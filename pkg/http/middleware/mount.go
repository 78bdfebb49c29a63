package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const basePathKey = "basePath"

// ResolveBasePath returns "/"+first segment when it matches one of names case-insensitively,
// keeping the request's original casing, and the remaining path.
func ResolveBasePath(path string, names []string) (base, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	first, remainder, _ := strings.Cut(trimmed, "/")
	if first == "" {
		return "", path
	}
	for _, n := range names {
		if strings.EqualFold(first, n) {
			return "/" + first, "/" + remainder
		}
	}
	return "", path
}

// MountPrefix strips a recognised deployment prefix before routing and records it for handlers.
// Register with Echo.Pre.
func MountPrefix(names []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			base, rest := ResolveBasePath(req.URL.Path, names)
			if base != "" {
				req.URL.Path = rest
				req.URL.RawPath = ""
			}
			c.Set(basePathKey, base)
			return next(c)
		}
	}
}

// BasePath returns the prefix MountPrefix recorded, or "".
func BasePath(c echo.Context) string {
	if v, ok := c.Get(basePathKey).(string); ok {
		return v
	}
	return ""
}
