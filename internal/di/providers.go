package di

import (
	"fmt"
	"os"

	"RiskView/internal/adapter/htmlview"
	"RiskView/internal/domain/models"
	"RiskView/internal/handler/web"
	"RiskView/internal/registry"
	"RiskView/internal/repository"
	"RiskView/internal/service/ratelimit"
	"RiskView/internal/service/riskapi"
	"RiskView/internal/services/colorscale"
	"RiskView/internal/services/render"
	"RiskView/internal/services/sorter"
	"RiskView/internal/usecase"
	"RiskView/pkg/cache"
	"RiskView/pkg/config"
	pkgkafka "RiskView/pkg/kafka"
	applogger "RiskView/pkg/logger"
	"RiskView/pkg/metrics"
	"RiskView/pkg/server"
)

// ProvideKafkaProducer creates the producer behind the log collector. Without brokers it returns nil.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger builds the application logger and attaches the Kafka log collector when enabled.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if !cfg.Log.Collector.Enabled || producer == nil {
		return l, func() {}, nil
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   cfg.Log.Collector.Interval,
		CountThreshold: cfg.Log.Collector.CountThreshold,
		Topic:          cfg.Log.Collector.Topic,
		Publisher:      producer,
	})
	return l, l.RemoveCollector, nil
}

// ProvideCLILogger logs warnings and errors to stderr so they never mix with rendered output.
func ProvideCLILogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "info" || level == "debug" {
		level = "warn"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCache selects the session cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, func(), error) {
	c := cfg.Cache
	if c.Backend == "memory" {
		mc := cache.NewMemoryCache(
			cache.WithMemoryMaxSize(c.MaxEntries),
			cache.WithMemoryDefaultTTL(c.SessionTTL),
			cache.WithMemoryCleanup(c.CleanupInterval),
		)
		return mc, func() { _ = mc.Close() }, nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(c.Redis.Host),
		cache.WithRedisPort(c.Redis.Port),
		cache.WithRedisPassword(c.Redis.Password),
		cache.WithRedisDB(c.Redis.DB),
		cache.WithRedisPrefix(c.Redis.Prefix),
		cache.WithRedisPool(c.Redis.PoolSize, c.Redis.MinIdleConns, c.Redis.PoolTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	if c.Backend == "redis" {
		return rc, func() { _ = rc.Close() }, nil
	}
	lc := cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(c.MaxEntries),
		cache.WithLayeredMemoryTTL(c.MemoryTTL),
	)
	return lc, func() { _ = lc.Close() }, nil
}

// ProvideMetrics returns the process-wide Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideRiskAPI creates the backend client.
func ProvideRiskAPI(cfg *config.Config, m *metrics.Recorder, l *applogger.Logger) *riskapi.Client {
	return riskapi.New(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		riskapi.WithMetrics(m),
		riskapi.WithLogger(l),
	)
}

// ProvideRenderer applies the configured color policy and risk direction.
func ProvideRenderer(cfg *config.Config) (*render.Renderer, error) {
	policy, err := colorscale.ParsePolicy(cfg.View.ColorPolicy)
	if err != nil {
		return nil, err
	}
	direction, err := colorscale.ParseDirection(cfg.View.RiskDirection)
	if err != nil {
		return nil, err
	}
	return render.New(policy, direction), nil
}

// ProvideLoader applies the configured request defaults.
func ProvideLoader(cfg *config.Config, src *riskapi.Client, reg *registry.Registry, srt *sorter.Sorter, l *applogger.Logger) (*usecase.Loader, error) {
	mode, err := models.ParseReturnMode(cfg.View.DefaultMode, models.ModeTrailing)
	if err != nil {
		return nil, err
	}
	timeline, err := models.ParseTimeline(cfg.View.DefaultTimeline)
	if err != nil {
		return nil, fmt.Errorf("view.default_timeline: %w", err)
	}
	return usecase.NewLoader(src, reg, srt, usecase.LoaderConfig{
		DefaultMode:     mode,
		DefaultTimeline: timeline,
		MetricsDuration: cfg.Backend.MetricsDuration,
	}, l), nil
}

// ProvideSessionStore keeps views in the session cache for the configured TTL.
func ProvideSessionStore(c cache.Service, cfg *config.Config) *repository.SessionStore {
	return repository.NewSessionStore(c, cfg.Cache.SessionTTL)
}

// ProvideViews backs views with the session store, which also issues their generations.
func ProvideViews(loader *usecase.Loader, renderer *render.Renderer, srt *sorter.Sorter,
	store *repository.SessionStore, m *metrics.Recorder, l *applogger.Logger) *usecase.Views {
	return usecase.NewViews(loader, renderer, srt, store, store, m, l)
}

// ProvideLocalViews keeps views in process; the CLI renders a single view and exits.
func ProvideLocalViews(loader *usecase.Loader, renderer *render.Renderer, srt *sorter.Sorter,
	m *metrics.Recorder, l *applogger.Logger) *usecase.Views {
	return usecase.NewViews(loader, renderer, srt, usecase.NewLocalGenerations(), nil, m, l)
}

// ProvideLimiter throttles loads per view.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.View.LoadBurst, cfg.View.LoadRate)
}

// ProvideViewHandler creates the HTTP and websocket view endpoints.
func ProvideViewHandler(cfg *config.Config, views *usecase.Views, pages *htmlview.Renderer,
	limiter *ratelimit.Limiter, l *applogger.Logger) *web.ViewHandler {
	return web.NewViewHandler(views, pages, limiter, cfg.Cache.SessionTTL, l)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h *web.ViewHandler, limiter *ratelimit.Limiter) *server.App {
	return server.New(cfg, l, h, limiter)
}

// ProvideCLI bundles what the command line renderer needs.
func ProvideCLI(views *usecase.Views, l *applogger.Logger) *CLI {
	return &CLI{Views: views, Logger: l, Out: os.Stdout}
}
