package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"sketchddd/application/commands/bus"
	commandhandlers "sketchddd/application/commands/handlers"
	"sketchddd/application/ports"
	querybus "sketchddd/application/queries/bus"
	queryhandlers "sketchddd/application/queries/handlers"
	"sketchddd/application/services"
	domainconfig "sketchddd/domain/config"
	"sketchddd/domain/core/validators"
	"sketchddd/infrastructure/cache"
	"sketchddd/infrastructure/config"
	"sketchddd/infrastructure/messaging"
	"sketchddd/infrastructure/messaging/eventbridge"
	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/dynamodb"
	"sketchddd/infrastructure/persistence/memory"
	"sketchddd/infrastructure/persistence/postgres"
	"sketchddd/infrastructure/persistence/sqlite"
	"sketchddd/pkg/observability"
)

const serviceName = "sketchddd"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName), zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig loads AWS configuration when a configured backend needs
// it; otherwise it returns an empty config that no client ever uses
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	if !cfg.UsesAWS() {
		return aws.Config{}, nil
	}
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideCodec creates the document codec
func ProvideCodec() *codec.Codec {
	return codec.NewCodec()
}

// ProvideDomainConfig derives validation thresholds from configuration
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideValidator creates the model validator
func ProvideValidator(dc *domainconfig.DomainConfig) *validators.Validator {
	return validators.NewValidator(dc)
}

// ProvideModelRepository creates the repository for the configured storage
// backend. The cleanup function closes SQL handles.
func ProvideModelRepository(
	ctx context.Context,
	cfg *config.Config,
	awsCfg aws.Config,
	c *codec.Codec,
	logger *zap.Logger,
) (ports.ModelRepository, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		return memory.NewModelRepository(c, logger), noop, nil

	case config.StorageSQLite:
		repo, err := sqlite.NewModelRepository(ctx, cfg.SQLitePath, c, logger)
		if err != nil {
			return nil, noop, err
		}
		return repo, closer(repo.Close, logger), nil

	case config.StoragePostgres:
		repo, err := postgres.NewModelRepository(ctx, cfg.PostgresDSN, c, logger)
		if err != nil {
			return nil, noop, err
		}
		return repo, closer(repo.Close, logger), nil

	case config.StorageDynamoDB:
		client := awsdynamodb.NewFromConfig(awsCfg)
		return dynamodb.NewModelRepository(client, cfg.DynamoDBTable, c, logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func closer(closeFn func() error, logger *zap.Logger) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Warn("Failed to close model store", zap.Error(err))
		}
	}
}

// ProvideEventPublisher publishes to EventBridge when events are enabled and
// only logs them otherwise
func ProvideEventPublisher(cfg *config.Config, awsCfg aws.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return messaging.NewLoggingPublisher(logger, 0)
	}
	return eventbridge.NewPublisher(awseventbridge.NewFromConfig(awsCfg), cfg.EventBusName, logger)
}

// ProvideMetrics creates the configured metrics sink
func ProvideMetrics(cfg *config.Config, awsCfg aws.Config, logger *zap.Logger) ports.Metrics {
	switch cfg.MetricsBackend {
	case config.MetricsPrometheus:
		return observability.NewCollector(cfg.MetricNamespace)
	case config.MetricsCloudWatch:
		namespace := fmt.Sprintf("%s/%s", cfg.MetricNamespace, cfg.Environment)
		return observability.NewCloudWatchMetrics(namespace, awscloudwatch.NewFromConfig(awsCfg), logger)
	default:
		return observability.NoopMetrics{}
	}
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideQueryCache creates the query result cache
func ProvideQueryCache(cfg *config.Config) (*cache.LRUCache, error) {
	return cache.NewLRUCache(cfg.QueryCacheSize)
}

// ProvideCommandBus creates the command bus with all model handlers
func ProvideCommandBus(
	service *services.ModelService,
	queryCache *cache.LRUCache,
	tracer *observability.Tracer,
	metrics ports.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.TracingMiddleware(tracer),
		bus.MetricsMiddleware(metrics),
		bus.InvalidationMiddleware(queryCache),
	)
	if err := commandhandlers.RegisterAll(commandBus, service, logger); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all model handlers
func ProvideQueryBus(
	cfg *config.Config,
	service *services.ModelService,
	queryCache *cache.LRUCache,
	metrics ports.Metrics,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.MetricsMiddleware(metrics),
		querybus.CachingMiddleware(queryCache, cfg.QueryCacheTTL),
	)
	if err := queryhandlers.RegisterAll(queryBus, service); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}
