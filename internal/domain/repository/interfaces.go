package repository

import (
	"context"

	"RiskView/internal/domain/models"
)

// MetricsSource reads precomputed metrics from the risk-reward backend.
// basePath is the deployment prefix the request arrived under ("" or e.g. "/risk-reward").
type MetricsSource interface {
	HeatmapData(ctx context.Context, basePath string, q models.HeatmapQuery) (*models.HeatmapPayload, error)
	Metrics(ctx context.Context, basePath, duration string) ([]models.MetricRow, error)
}

// Generations issues monotonically increasing request generations per view.
type Generations interface {
	Next(ctx context.Context, viewID string) (int64, error)
	Current(ctx context.Context, viewID string) (int64, error)
}

// SnapshotStore persists view state between requests of one session.
type SnapshotStore interface {
	Load(ctx context.Context, viewID string) (*models.ViewSnapshot, error)
	Save(ctx context.Context, snap *models.ViewSnapshot) error
}

type Metrics interface {
	RecordFetch(endpoint string, seconds float64, err error)
	RecordRender(view string)
	RecordStale(view string)
	RecordError(kind string)
}
