package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBasePath(t *testing.T) {
	names := []string{"risk-reward", "riskreward"}
	tests := []struct {
		path, base, rest string
	}{
		{"/risk-reward/heatmap", "/risk-reward", "/heatmap"},
		{"/Risk-Reward/heatmap", "/Risk-Reward", "/heatmap"},
		{"/RISKREWARD/api/view", "/RISKREWARD", "/api/view"},
		{"/riskreward", "/riskreward", "/"},
		{"/heatmap", "", "/heatmap"},
		{"/", "", "/"},
		{"/risk/heatmap", "", "/risk/heatmap"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			base, rest := ResolveBasePath(tt.path, names)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestMountPrefixRoutesStrippedPath(t *testing.T) {
	e := echo.New()
	e.Pre(MountPrefix([]string{"risk-reward"}))
	e.GET("/heatmap", func(c echo.Context) error {
		return c.String(http.StatusOK, BasePath(c))
	})

	for path, want := range map[string]string{
		"/Risk-Reward/heatmap": "/Risk-Reward",
		"/heatmap":             "",
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}
}
