package di

import (
	"context"
	"fmt"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/handler/api"
	internalrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/repository"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/accounts"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/equity"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/perfstats"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/usecase"
	pkgcache "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/cache"
	pkgch "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/clickhouse"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/config"
	xhttp "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/http"
	pkgkafka "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/kafka"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/metrics"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "json"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// ledger schema exists.
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

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.trades (account LowCardinality(String), symbol LowCardinality(String), side LowCardinality(String) DEFAULT '', price Float64 DEFAULT 0, qty Float64 DEFAULT 0, realized_pnl Float64, commission Float64, position_side LowCardinality(String) DEFAULT '', ts DateTime) ENGINE=MergeTree ORDER BY (account, ts)", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.transactions (account LowCardinality(String), ts DateTime, income_type LowCardinality(String), income Float64) ENGINE=MergeTree ORDER BY (account, ts)", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.earnings (account LowCardinality(String), ts DateTime, rewards Float64) ENGINE=MergeTree ORDER BY (account, ts)", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.balance_snapshots (account LowCardinality(String), ts DateTime, value Float64) ENGINE=ReplacingMergeTree ORDER BY (account, ts)", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideRedisCache creates the Redis client used for live position keys.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	cache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, 5, 30*time.Second),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache, nil
}

// ProvideDirectory loads the account directory and baseline files.
func ProvideDirectory(cfg *config.Config) (*accounts.Directory, error) {
	dir, err := accounts.Load(cfg.Accounts.File, cfg.Accounts.BalanceFile, cfg.Accounts.UnrealizedFile)
	if err != nil {
		return nil, fmt.Errorf("account directory: %w", err)
	}
	return dir, nil
}

// ProvideLedgerStore creates the ClickHouse-backed ledger reader.
func ProvideLedgerStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.LedgerStore {
	store := internalrepo.NewClickHouseLedgerStore(chClient, cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvideLedgerWriter creates the ClickHouse-backed ledger writer used by ingest.
func ProvideLedgerWriter(chClient *pkgch.Client, cfg *config.Config) repository.LedgerWriter {
	return internalrepo.NewClickHouseLedgerWriter(chClient, cfg.ClickHouse.Database)
}

// ProvideSnapshotStore creates the Redis-backed live snapshot reader.
func ProvideSnapshotStore(cache *pkgcache.RedisCache, dir *accounts.Directory, l *applogger.Logger) repository.SnapshotStore {
	store := internalrepo.NewRedisSnapshotStore(cache, dir.RedisKey)
	store.SetLogger(l)
	return store
}

// ProvideAggregator creates the bulk-metrics use case.
func ProvideAggregator(
	ledger repository.LedgerStore,
	snaps repository.SnapshotStore,
	dir *accounts.Directory,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.PerformanceAggregator {
	return usecase.NewPerformanceAggregator(
		ledger, snaps, dir, m, l,
		equity.CurveConfig{CutHour: cfg.Analytics.CutHour, IncludeTransferInBridge: true},
		perfstats.StreakConfig{
			IncludeZero:      cfg.Analytics.IncludeZeroLossDays,
			SkipTrailingZero: true,
		},
	)
}

// ProvideLiveEquity creates the live-equity use case.
func ProvideLiveEquity(snaps repository.SnapshotStore, l *applogger.Logger) *usecase.LiveEquity {
	return usecase.NewLiveEquity(snaps, l)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	l *applogger.Logger,
	agg *usecase.PerformanceAggregator,
	liveEq *usecase.LiveEquity,
	dir *accounts.Directory,
	ledger repository.LedgerStore,
	m repository.Metrics,
) xhttp.Handler {
	return api.NewPerformanceHandler(l, agg, liveEq, dir, ledger, m)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
// Returns nil when ingest is disabled; the app treats a nil consumer as
// "HTTP only".
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NoopHook{})
	return consumer, nil
}

// ProvideIngestHandler registers the ledger ingest handler for the topic.
func ProvideIngestHandler(writer repository.LedgerWriter, m repository.Metrics, cfg *config.Config) pkgkafka.MessageHandler {
	return usecase.NewLedgerIngestHandler(cfg.Kafka.Topic, writer, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	ingest pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	redis *pkgcache.RedisCache,
) *server.App {
	return server.New(cfg, l, handler, consumer, ingest, chClient, redis)
}
