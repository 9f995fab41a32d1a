//go:build wireinject
// +build wireinject

package di

import (
	"TrendML/pkg/config"
	"TrendML/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideCandleStore,
		ProvideRunStore,
		ProvideDatasetPublisher,

		// Pipeline
		ProvideIndicatorConfig,
		ProvidePipeline,
		ProvideEngineer,

		// Use cases and handlers
		ProvideProgressHub,
		ProvideDatasetUseCase,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
