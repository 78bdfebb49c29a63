package usecase

import (
	"context"
	"fmt"
	"strings"

	"RiskView/internal/domain/models"
	domrepo "RiskView/internal/domain/repository"
	"RiskView/internal/registry"
	"RiskView/internal/services/sorter"
	applogger "RiskView/pkg/logger"
)

// LoaderConfig holds request defaults.
type LoaderConfig struct {
	DefaultMode     models.ReturnMode
	DefaultTimeline models.Timeline
	MetricsDuration string
}

// LoadResult is the data of one successful load; exactly one field is set.
type LoadResult struct {
	Heatmap *models.HeatmapPayload
	Rows    []models.MetricRow
}

// Loader resolves view requests and fetches their data.
type Loader struct {
	source   domrepo.MetricsSource
	registry *registry.Registry
	sorter   *sorter.Sorter
	cfg      LoaderConfig
	logger   *applogger.Logger
}

func NewLoader(source domrepo.MetricsSource, reg *registry.Registry, srt *sorter.Sorter, cfg LoaderConfig, l *applogger.Logger) *Loader {
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = models.ModeTrailing
	}
	if cfg.DefaultTimeline <= 0 {
		cfg.DefaultTimeline = 3
	}
	if cfg.MetricsDuration == "" {
		cfg.MetricsDuration = "3years"
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Loader{source: source, registry: reg, sorter: srt, cfg: cfg, logger: l}
}

// Categories lists the categories a view can show, in display order.
func (l *Loader) Categories() []string {
	return l.registry.Categories()
}

// Resolve turns query parameters into a target. index takes precedence over category;
// neither yields ErrNoTarget.
func (l *Loader) Resolve(req models.ViewRequest) (models.ViewTarget, error) {
	index := strings.TrimSpace(req.Index)
	category := strings.TrimSpace(req.Category)
	if index == "" && category == "" {
		return models.ViewTarget{}, ErrNoTarget
	}

	mode, err := models.ParseReturnMode(req.Mode, l.cfg.DefaultMode)
	if err != nil {
		return models.ViewTarget{}, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	timeline := l.cfg.DefaultTimeline
	if strings.TrimSpace(req.Timeline) != "" {
		if timeline, err = models.ParseTimeline(req.Timeline); err != nil {
			return models.ViewTarget{}, fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
	}

	t := models.ViewTarget{Mode: mode, Timeline: timeline}
	if index != "" {
		t.Index = index
	} else {
		t.Category = category
	}
	return t, nil
}

// Fetch loads the data for target. Category rows come back filtered to the registry
// and ordered by name.
func (l *Loader) Fetch(ctx context.Context, basePath string, target models.ViewTarget) (*LoadResult, error) {
	if target.IsHeatmap() {
		l.logger.Debug("fetching heatmap",
			applogger.String("index", target.Index),
			applogger.String("mode", string(target.Mode)),
			applogger.Float64("timeline", float64(target.Timeline)),
		)
		p, err := l.source.HeatmapData(ctx, basePath, models.HeatmapQuery{
			Index:    target.Index,
			Mode:     target.Mode,
			Timeline: target.Timeline,
		})
		if err != nil {
			return nil, &FetchError{Err: err}
		}
		if p.IndexName == "" {
			p.IndexName = target.Index
		}
		return &LoadResult{Heatmap: p}, nil
	}

	if target.Category == "" {
		return nil, ErrNoTarget
	}

	all, err := l.source.Metrics(ctx, basePath, l.cfg.MetricsDuration)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	rows := l.registry.Filter(target.Category, all)
	if len(rows) == 0 {
		_, known := l.registry.Members(target.Category)
		l.logger.Warn("category has no rows",
			applogger.String("category", target.Category),
			applogger.Bool("known_category", known),
			applogger.Int("fetched", len(all)),
		)
		return nil, ErrNoData
	}
	return &LoadResult{Rows: l.sorter.ByName(rows)}, nil
}
