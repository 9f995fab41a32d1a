package repository

import (
	"context"
	"time"

	"TrendML/internal/domain/models"
)

// CandleStore provides read-only access to validated, chronologically
// ascending candles. Loading and schema validation live behind this
// boundary; the pipeline never re-checks ordering.
type CandleStore interface {
	GetCandles(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Candle, error)
	GetLatestNCandles(ctx context.Context, symbol string, n int, tf Timeframe) ([]models.Candle, error)
	Health(ctx context.Context) error
}

// RunStore persists dataset-run summaries for the dashboard history view.
type RunStore interface {
	Init(ctx context.Context) error
	StoreRun(ctx context.Context, run *models.RunSummary) error
	GetRun(ctx context.Context, runID string) (*models.RunSummary, error)
	Close() error
}

// DatasetPublisher announces prepared datasets to the training collaborator.
type DatasetPublisher interface {
	Publish(ctx context.Context, ev *models.DatasetEvent) error
	Close() error
}

// ProgressSink receives pipeline stage events for live observers.
type ProgressSink interface {
	Emit(ev models.ProgressEvent)
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordRunPrepared(symbol, status string)
	RecordRowsProcessed(stage string, rows int)
	RecordStageDuration(stage string, seconds float64)
	RecordError(kind string)
}
