//go:build wireinject
// +build wireinject

package di

import (
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/config"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideRedisCache,
		ProvideDirectory,

		// Repositories
		ProvideLedgerStore,
		ProvideLedgerWriter,
		ProvideSnapshotStore,

		// Use cases
		ProvideAggregator,
		ProvideLiveEquity,

		// Transport
		ProvideHandler,
		ProvideKafkaConsumer,
		ProvideIngestHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
