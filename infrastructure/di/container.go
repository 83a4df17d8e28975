package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"sketchddd/application/commands/bus"
	"sketchddd/application/ports"
	querybus "sketchddd/application/queries/bus"
	"sketchddd/application/services"
	"sketchddd/infrastructure/cache"
	"sketchddd/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Repository ports.ModelRepository
	Publisher  ports.EventPublisher
	Metrics    ports.Metrics
	Service    *services.ModelService
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	QueryCache *cache.LRUCache
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideCodec,
	ProvideDomainConfig,
	ProvideValidator,
	ProvideModelRepository,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideQueryCache,
	services.NewModelService,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)
