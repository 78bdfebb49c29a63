package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applogger "RiskView/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(http.StatusOK))
	assert.Equal(t, "4xx", statusClass(http.StatusConflict))
	assert.Equal(t, "5xx", statusClass(http.StatusBadGateway))
}

func TestRouteContextLabelsTemplate(t *testing.T) {
	e := echo.New()
	var label string
	e.Use(RouteContext())
	e.Use(echo.WrapMiddleware(Metrics(applogger.Nop(), time.Second)))
	e.GET("/api/view/:kind", func(c echo.Context) error {
		label = routeLabel(c.Request())
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view/sort", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/api/view/:kind", label)
}
