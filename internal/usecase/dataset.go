package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendML/internal/domain/models"
	domrepo "TrendML/internal/domain/repository"
	"TrendML/internal/features"
	"TrendML/internal/indicators"
	pkgcache "TrendML/pkg/cache"
	applogger "TrendML/pkg/logger"
)

// DatasetUseCase orchestrates one preparation run: load candles, compute
// indicators, engineer features, persist the run summary and announce it.
type DatasetUseCase struct {
	candles  domrepo.CandleStore
	runs     domrepo.RunStore
	pub      domrepo.DatasetPublisher
	progress domrepo.ProgressSink
	metrics  domrepo.Metrics
	cache    pkgcache.Service
	cacheTTL time.Duration

	pipeline *indicators.Pipeline
	engineer *features.Engineer

	maxCandles int
	l          *applogger.Logger
}

// DatasetDeps bundles the collaborators of DatasetUseCase. Publisher,
// progress sink and cache may be nil; those steps are skipped.
type DatasetDeps struct {
	Candles  domrepo.CandleStore
	Runs     domrepo.RunStore
	Pub      domrepo.DatasetPublisher
	Progress domrepo.ProgressSink
	Metrics  domrepo.Metrics
	Cache    pkgcache.Service
	CacheTTL time.Duration
}

func NewDatasetUseCase(
	deps DatasetDeps,
	pipeline *indicators.Pipeline,
	engineer *features.Engineer,
	maxCandles int,
	l *applogger.Logger,
) *DatasetUseCase {
	if maxCandles <= 0 {
		maxCandles = 10000
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 10 * time.Minute
	}
	return &DatasetUseCase{
		candles:    deps.Candles,
		runs:       deps.Runs,
		pub:        deps.Pub,
		progress:   deps.Progress,
		metrics:    deps.Metrics,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		pipeline:   pipeline,
		engineer:   engineer,
		maxCandles: maxCandles,
		l:          l,
	}
}

type PrepareDatasetParams struct {
	Symbol         string
	From           time.Time
	To             time.Time
	Timeframe      domrepo.Timeframe
	ApplyBalancing bool
}

type PrepareDatasetResult struct {
	Run      *models.RunSummary
	Metadata features.Metadata
	Dataset  *features.Dataset
}

func (uc *DatasetUseCase) PrepareDataset(ctx context.Context, p PrepareDatasetParams) (*PrepareDatasetResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Timeframe == "" {
		p.Timeframe = domrepo.DefaultTimeframe()
	}

	runID := fmt.Sprintf("%s-%s-%d", p.Symbol, p.Timeframe, time.Now().UnixNano())

	candles, err := uc.loadCandles(ctx, runID, p)
	if err != nil {
		return nil, err
	}
	if len(candles) < 2 {
		uc.recordError("not_enough_candles")
		return nil, fmt.Errorf("not enough candles for %s: got %d, need at least 2", p.Symbol, len(candles))
	}

	frame, err := uc.computeIndicators(runID, candles)
	if err != nil {
		return nil, err
	}

	ds, err := uc.engineerFeatures(runID, frame, p.ApplyBalancing)
	if err != nil {
		return nil, err
	}

	run := &models.RunSummary{
		RunID:          runID,
		Symbol:         p.Symbol,
		Timeframe:      string(p.Timeframe),
		From:           candles[0].Bucket,
		To:             candles[len(candles)-1].Bucket,
		Rows:           len(candles),
		NumFeatures:    ds.Metadata.NumFeatures,
		TrainRows:      ds.Metadata.TrainRows,
		ValRows:        ds.Metadata.ValRows,
		TestRows:       ds.Metadata.TestRows,
		Imbalanced:     ds.Metadata.Imbalanced,
		ImbalanceRatio: ds.Metadata.ImbalanceRatio,
		Balanced:       ds.Metadata.Balanced,
		PreparedAt:     time.Now().UTC(),
	}

	if err := uc.persistAndPublish(ctx, run, ds); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordRunPrepared(p.Symbol, "ok")
	}
	if uc.l != nil {
		uc.l.Info("dataset prepared",
			applogger.String("run_id", runID),
			applogger.String("symbol", p.Symbol),
			applogger.String("tf", string(p.Timeframe)),
			applogger.Int("rows", run.Rows),
			applogger.Int("train", run.TrainRows),
			applogger.Int("val", run.ValRows),
			applogger.Int("test", run.TestRows),
			applogger.Bool("balanced", run.Balanced),
			applogger.Float64("imbalance_ratio", run.ImbalanceRatio),
		)
	}

	return &PrepareDatasetResult{Run: run, Metadata: ds.Metadata, Dataset: ds}, nil
}

func (uc *DatasetUseCase) loadCandles(ctx context.Context, runID string, p PrepareDatasetParams) ([]models.Candle, error) {
	uc.emit(runID, "load", "start", 0)
	start := time.Now()

	var (
		candles []models.Candle
		err     error
	)
	if p.From.IsZero() || p.To.IsZero() {
		candles, err = uc.candles.GetLatestNCandles(ctx, p.Symbol, uc.maxCandles, p.Timeframe)
	} else {
		candles, err = uc.candles.GetCandles(ctx, p.Symbol, p.From, p.To, p.Timeframe)
	}
	if err != nil {
		uc.emit(runID, "load", "error", 0)
		uc.recordError("load_candles")
		return nil, fmt.Errorf("load candles: %w", err)
	}
	if len(candles) > uc.maxCandles {
		candles = candles[len(candles)-uc.maxCandles:]
	}

	uc.emit(runID, "load", "done", len(candles))
	uc.observe("load", start, len(candles))
	return candles, nil
}

func (uc *DatasetUseCase) computeIndicators(runID string, candles []models.Candle) (*models.Frame, error) {
	uc.emit(runID, "indicators", "start", len(candles))
	start := time.Now()

	frame, err := uc.pipeline.Calculate(models.FrameFromCandles(candles))
	if err != nil {
		uc.emit(runID, "indicators", "error", 0)
		uc.recordError("indicators")
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	uc.emit(runID, "indicators", "done", frame.Len())
	uc.observe("indicators", start, frame.Len())
	return frame, nil
}

func (uc *DatasetUseCase) engineerFeatures(runID string, frame *models.Frame, applyBalancing bool) (*features.Dataset, error) {
	uc.emit(runID, "features", "start", frame.Len())
	start := time.Now()

	ds, err := uc.engineer.PrepareFeatures(frame, applyBalancing)
	if err != nil {
		uc.emit(runID, "features", "error", 0)
		uc.recordError("features")
		return nil, fmt.Errorf("engineer features: %w", err)
	}

	rows := ds.Metadata.TrainRows + ds.Metadata.ValRows + ds.Metadata.TestRows
	uc.emit(runID, "features", "done", rows)
	uc.observe("features", start, rows)
	return ds, nil
}

func (uc *DatasetUseCase) persistAndPublish(ctx context.Context, run *models.RunSummary, ds *features.Dataset) error {
	uc.emit(run.RunID, "persist", "start", 0)
	start := time.Now()

	if uc.runs != nil {
		if err := uc.runs.StoreRun(ctx, run); err != nil {
			uc.emit(run.RunID, "persist", "error", 0)
			uc.recordError("store_run")
			return fmt.Errorf("store run: %w", err)
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, runCacheKey(run.RunID), run, uc.cacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("cache run summary", applogger.Error(err))
		}
	}
	if uc.pub != nil {
		ev := &models.DatasetEvent{
			RunID:          run.RunID,
			Symbol:         run.Symbol,
			Timeframe:      run.Timeframe,
			From:           run.From,
			To:             run.To,
			NumFeatures:    run.NumFeatures,
			FeatureNames:   ds.Metadata.FeatureNames,
			TrainRows:      run.TrainRows,
			ValRows:        run.ValRows,
			TestRows:       run.TestRows,
			Imbalanced:     run.Imbalanced,
			ImbalanceRatio: run.ImbalanceRatio,
			PreparedAt:     run.PreparedAt,
		}
		if err := uc.pub.Publish(ctx, ev); err != nil {
			uc.emit(run.RunID, "persist", "error", 0)
			uc.recordError("publish")
			return fmt.Errorf("publish dataset event: %w", err)
		}
	}

	uc.emit(run.RunID, "persist", "done", 0)
	uc.observe("persist", start, 0)
	return nil
}

// GetRun returns a stored run summary, serving from cache when possible.
// A nil summary with nil error means the run is unknown.
func (uc *DatasetUseCase) GetRun(ctx context.Context, runID string) (*models.RunSummary, error) {
	if runID == "" {
		return nil, fmt.Errorf("run_id required")
	}

	if uc.cache != nil {
		var run models.RunSummary
		if err := uc.cache.Get(ctx, runCacheKey(runID), &run); err == nil {
			return &run, nil
		}
	}

	if uc.runs == nil {
		return nil, nil
	}
	run, err := uc.runs.GetRun(ctx, runID)
	if err != nil {
		uc.recordError("get_run")
		return nil, err
	}
	if run != nil && uc.cache != nil {
		if err := uc.cache.Set(ctx, runCacheKey(runID), run, uc.cacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("cache run summary", applogger.Error(err))
		}
	}
	return run, nil
}

func (uc *DatasetUseCase) emit(runID, stage, status string, rows int) {
	if uc.progress == nil {
		return
	}
	uc.progress.Emit(models.ProgressEvent{
		RunID:     runID,
		Stage:     stage,
		Status:    status,
		Rows:      rows,
		Timestamp: time.Now().UTC(),
	})
}

func (uc *DatasetUseCase) observe(stage string, start time.Time, rows int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordStageDuration(stage, time.Since(start).Seconds())
	if rows > 0 {
		uc.metrics.RecordRowsProcessed(stage, rows)
	}
}

func (uc *DatasetUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}

func runCacheKey(runID string) string {
	return "run:" + runID
}
