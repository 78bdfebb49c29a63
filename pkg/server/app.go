package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RiskView/internal/service/ratelimit"
	"RiskView/pkg/config"
	xhttp "RiskView/pkg/http"
	applogger "RiskView/pkg/logger"
)

const limiterIdle = 10 * time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	limiter     *ratelimit.Limiter
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, limiter *ratelimit.Limiter) *App {
	if l == nil {
		l = applogger.Nop()
	}
	a := &App{
		cfg:         cfg,
		logger:      l,
		httpHandler: h,
		limiter:     limiter,
	}
	a.httpServer = xhttp.NewServer(h, l,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path),
		xhttp.WithMountNames(cfg.Server.MountNames...),
	)
	return a
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server {
	return a.httpServer
}

// Run starts the application and blocks until interrupted or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting riskview",
		applogger.String("env", a.cfg.Environment),
		applogger.String("backend", a.cfg.Backend.BaseURL),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.String("color_policy", a.cfg.View.ColorPolicy),
		applogger.Strings("mount_names", a.cfg.Server.MountNames),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.limiter != nil {
		go a.pruneLimiter(ctx)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// pruneLimiter drops buckets of views that stopped loading.
func (a *App) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.limiter.Prune(limiterIdle); n > 0 {
				a.logger.Debug("pruned idle rate limit buckets", applogger.Int("count", n))
			}
		}
	}
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are closed by the injector's cleanup.
func (a *App) shutdown() error {
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
