package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskView/internal/service/ratelimit"
	"RiskView/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("basePath").(string))
	})
}

func TestNewAppliesServerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.BaseURL = "http://localhost:5000"
	cfg.Metrics.Enabled = false

	a := New(cfg, nil, pingHandler{}, ratelimit.New(1, 1))
	e := a.Server().Echo()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/RiskReward/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/RiskReward", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunStopsWithContext(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Metrics.Enabled = false

	a := New(cfg, nil, pingHandler{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
