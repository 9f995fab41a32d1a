package di

import (
	"context"
	"fmt"
	"time"

	"TrendML/internal/domain/repository"
	"TrendML/internal/features"
	"TrendML/internal/handler/api"
	"TrendML/internal/indicators"
	internalrepo "TrendML/internal/repository"
	"TrendML/internal/usecase"
	pkgcache "TrendML/pkg/cache"
	pkgch "TrendML/pkg/clickhouse"
	"TrendML/pkg/config"
	xhttp "TrendML/pkg/http"
	pkgkafka "TrendML/pkg/kafka"
	applogger "TrendML/pkg/logger"
	"TrendML/pkg/metrics"
	"TrendML/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "dev" || cfg.Environment == "local" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS trendml",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCandleStore creates the ClickHouse candle store.
func ProvideCandleStore(chClient *pkgch.Client, l *applogger.Logger) repository.CandleStore {
	store := internalrepo.NewCHCandleStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideRunStore creates the ClickHouse run store.
func ProvideRunStore(chClient *pkgch.Client) repository.RunStore {
	return internalrepo.NewCHRunStore(chClient, "")
}

// ProvideDatasetPublisher creates the Kafka dataset publisher, or nil when
// Kafka is disabled.
func ProvideDatasetPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.DatasetPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaDatasetPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the run-metadata cache: Redis when enabled, an
// in-process cache otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Host),
		pkgcache.WithRedisPort(cfg.Cache.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Password),
		pkgcache.WithRedisDB(cfg.Cache.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideIndicatorConfig maps the YAML indicator section onto pipeline config.
func ProvideIndicatorConfig(cfg *config.Config) indicators.Config {
	ind := cfg.Dataset.Indicators
	return indicators.Config{
		ATRPeriod:       ind.ATRPeriod,
		SMAPeriods:      ind.SMAPeriods,
		BollingerPeriod: ind.BollingerPeriod,
		BollingerStdDev: ind.BollingerStdDev,
		RSIPeriod:       ind.RSIPeriod,
		MACDFast:        ind.MACDFast,
		MACDSlow:        ind.MACDSlow,
		MACDSignal:      ind.MACDSignal,
		StochPeriod:     ind.StochasticPeriod,
		StochSmoothing:  ind.StochasticSmooth,
		ADXPeriod:       ind.ADXPeriod,
		CCIPeriod:       ind.CCIPeriod,
	}
}

// ProvidePipeline creates the indicator pipeline.
func ProvidePipeline(indCfg indicators.Config) *indicators.Pipeline {
	return indicators.NewPipeline(indCfg)
}

// ProvideEngineer creates the feature engineer.
func ProvideEngineer(cfg *config.Config) (*features.Engineer, error) {
	d := cfg.Dataset
	var sampler features.Oversampler
	if d.BalancingMethod == "smote" {
		sampler = features.NewSMOTE(d.SMOTENeighbours, d.SMOTESeed)
	}
	return features.NewEngineer(features.EngineerConfig{
		FeatureColumns:     indicators.IndicatorColumns(),
		LabelThreshold:     d.LabelThreshold,
		TrainRatio:         d.TrainRatio,
		ValRatio:           d.ValRatio,
		TestRatio:          d.TestRatio,
		ImbalanceThreshold: d.ImbalanceThreshold,
		Oversampler:        sampler,
		FitOnTrainOnly:     d.FitOnTrainOnly,
	})
}

// ProvideProgressHub creates the websocket progress feed.
func ProvideProgressHub(l *applogger.Logger) *api.ProgressHub {
	return api.NewProgressHub(l)
}

// ProvideDatasetUseCase creates the dataset preparation use case.
func ProvideDatasetUseCase(
	candles repository.CandleStore,
	runs repository.RunStore,
	pub repository.DatasetPublisher,
	hub *api.ProgressHub,
	m repository.Metrics,
	cache pkgcache.Service,
	pipeline *indicators.Pipeline,
	engineer *features.Engineer,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.DatasetUseCase {
	return usecase.NewDatasetUseCase(usecase.DatasetDeps{
		Candles:  candles,
		Runs:     runs,
		Pub:      pub,
		Progress: hub,
		Metrics:  m,
		Cache:    cache,
		CacheTTL: cfg.Cache.TTL,
	}, pipeline, engineer, cfg.Dataset.MaxCandles, l)
}

// routes bundles the REST handler and the websocket hub behind one
// route-registering handler.
type routes struct {
	rest *api.DatasetsEchoHandler
	ws   *api.ProgressHub
}

func (r routes) RegisterRoutes(e *echo.Echo) {
	r.rest.RegisterRoutes(e)
	r.ws.RegisterRoutes(e)
}

// ProvideHTTPHandler creates the HTTP route surface.
func ProvideHTTPHandler(
	l *applogger.Logger,
	uc *usecase.DatasetUseCase,
	store repository.CandleStore,
	indCfg indicators.Config,
	hub *api.ProgressHub,
) xhttp.Handler {
	return routes{
		rest: api.NewDatasetsEchoHandler(l, uc, store, indCfg),
		ws:   hub,
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	chClient *pkgch.Client,
	runs repository.RunStore,
	pub repository.DatasetPublisher,
	handler xhttp.Handler,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, chClient, runs, pub, handler, l)
}
