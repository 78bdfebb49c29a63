package riskapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"RiskView/internal/domain/models"
	domrepo "RiskView/internal/domain/repository"
	xhttp "RiskView/pkg/http"
	applogger "RiskView/pkg/logger"
)

const (
	endpointHeatmap = "heatmap_data"
	endpointMetrics = "metrics"
)

// Client reads the risk-reward backend's JSON API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	metrics domrepo.Metrics
	logger  *applogger.Logger
	now     func() time.Time
}

// Option configures Client.
type Option func(*Client)

// WithMetrics records fetch latency and failures.
func WithMetrics(m domrepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock replaces the clock used for the cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  applogger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ domrepo.MetricsSource = (*Client)(nil)

// HeatmapData fetches the monthly grid for one index. Every call carries a fresh
// cache-busting "_" parameter.
func (c *Client) HeatmapData(ctx context.Context, basePath string, q models.HeatmapQuery) (*models.HeatmapPayload, error) {
	var out models.HeatmapPayload
	err := c.get(ctx, basePath, endpointHeatmap, map[string][]string{
		"index":    {q.Index},
		"duration": {"all"},
		"mode":     {string(q.Mode)},
		"timeline": {q.Timeline.String()},
		"_":        {strconv.FormatInt(c.now().UnixMilli(), 10)},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.HeatmapData == nil {
		out.HeatmapData = map[string]map[string]*float64{}
	}
	return &out, nil
}

// Metrics fetches the metric rows of every index for duration.
func (c *Client) Metrics(ctx context.Context, basePath, duration string) ([]models.MetricRow, error) {
	var out []models.MetricRow
	if err := c.get(ctx, basePath, endpointMetrics, map[string][]string{
		"duration": {duration},
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// URL returns the absolute address of endpoint under basePath.
func (c *Client) URL(basePath, endpoint string) string {
	return c.baseURL + strings.TrimRight(basePath, "/") + "/api/" + endpoint
}

func (c *Client) get(ctx context.Context, basePath, endpoint string, query map[string][]string, dest interface{}) error {
	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL:         c.URL(basePath, endpoint),
		QueryParams: query,
	}, dest)
	if c.metrics != nil {
		c.metrics.RecordFetch(endpoint, time.Since(start).Seconds(), err)
	}
	if err != nil {
		c.logger.Error("backend fetch failed",
			applogger.String("endpoint", endpoint),
			applogger.String("base_path", basePath),
			applogger.Duration("latency", time.Since(start)),
			applogger.Error(err),
		)
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	return nil
}
