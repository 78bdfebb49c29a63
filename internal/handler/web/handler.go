// Package web serves views as HTML pages, JSON render trees and a websocket channel.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"RiskView/internal/adapter/htmlview"
	"RiskView/internal/domain/models"
	"RiskView/internal/service/metrics"
	"RiskView/internal/service/ratelimit"
	"RiskView/internal/services/render"
	"RiskView/internal/usecase"
	xhttp "RiskView/pkg/http"
	"RiskView/pkg/http/middleware"
	applogger "RiskView/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "riskview_view"

// ViewHandler implements the view endpoints over usecase.Views.
type ViewHandler struct {
	views      *usecase.Views
	pages      *htmlview.Renderer
	limiter    *ratelimit.Limiter
	logger     *applogger.Logger
	sessionTTL time.Duration
	upgrader   websocket.Upgrader
}

func NewViewHandler(views *usecase.Views, pages *htmlview.Renderer, limiter *ratelimit.Limiter,
	sessionTTL time.Duration, l *applogger.Logger) *ViewHandler {
	if l == nil {
		l = applogger.Nop()
	}
	metrics.Register()
	return &ViewHandler{
		views:      views,
		pages:      pages,
		limiter:    limiter,
		logger:     l,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *ViewHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/heatmap", h.HeatmapPage)
	e.GET("/heatmap/sort", h.SortPage)
	e.GET("/heatmap/year", h.YearPage)

	g := e.Group("/api/view")
	g.GET("", h.LoadView)
	g.GET("/sort", h.SortView)
	g.GET("/year", h.YearView)

	e.GET("/ws/view", h.Stream)
}

// operation runs against the session's controller.
type operation func(ctx context.Context, ctrl *usecase.Controller) (*render.RenderTree, error)

// run opens the session's view, applies op and saves the result. A stale load is not saved,
// and neither is a sort or year change made on a view a newer load has since replaced:
// the newer load owns the snapshot.
func (h *ViewHandler) run(c echo.Context, endpoint string, op operation) (*usecase.Controller, *render.RenderTree, error) {
	start := time.Now()
	ctx := c.Request().Context()

	ctrl, err := h.views.Open(ctx, h.sessionID(c))
	if err != nil {
		h.observe(endpoint, start, err)
		return nil, nil, err
	}

	tree, opErr := op(ctx, ctrl)
	if !errors.Is(opErr, usecase.ErrStale) {
		err := h.views.Save(ctx, ctrl)
		switch {
		case errors.Is(err, usecase.ErrStale):
			h.logger.Debug("view superseded, not saved", applogger.String("view_id", ctrl.ID()), applogger.String("endpoint", endpoint))
		case err != nil:
			h.logger.Error("save view failed", applogger.String("view_id", ctrl.ID()), applogger.Error(err))
			if opErr == nil {
				opErr = err
			}
		}
	}
	h.observe(endpoint, start, opErr)
	return ctrl, tree, opErr
}

func (h *ViewHandler) load(c echo.Context, endpoint string, req *models.ViewRequest) (*usecase.Controller, *render.RenderTree, error) {
	basePath := middleware.BasePath(c)
	return h.run(c, endpoint, func(ctx context.Context, ctrl *usecase.Controller) (*render.RenderTree, error) {
		if h.limiter != nil && !h.limiter.Allow(ctrl.ID()) {
			return nil, errRateLimited
		}
		return ctrl.LoadRequest(ctx, basePath, *req)
	})
}

func (h *ViewHandler) observe(endpoint string, start time.Time, err error) {
	metrics.ViewLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ViewErrors.WithLabelValues(endpoint, toAppError(err).Code).Inc()
	}
}

// sessionID returns the view id carried by the session cookie, issuing one when absent.
func (h *ViewHandler) sessionID(c echo.Context) string {
	if ck, err := c.Cookie(sessionCookie); err == nil {
		if _, perr := uuid.Parse(ck.Value); perr == nil {
			return ck.Value
		}
	}

	id := uuid.NewString()
	path := middleware.BasePath(c)
	if path == "" {
		path = "/"
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     path,
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// logFailure logs server-side failures; client mistakes are left to the request log.
func (h *ViewHandler) logFailure(endpoint string, err error, appErr *xhttp.AppError) {
	if appErr.Status < http.StatusInternalServerError {
		return
	}
	h.logger.Error("view request failed",
		applogger.String("endpoint", endpoint),
		applogger.String("code", appErr.Code),
		applogger.Error(err),
	)
}
