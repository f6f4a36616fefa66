package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripsync/internal/api/controllers"
	"tripsync/internal/config"
	"tripsync/internal/services"
	mem "tripsync/pkg/memcache"
	"tripsync/pkg/utils"
)

var Module = fx.Provide(
	ProvidePriceEstimator,
	ProvidePromptBuilder,
	ProvideResponseExtractor,
	ProvideTripValidator,
	ProvideTripEnricher,
	ProvideTripService,
	ProvideChatService,
	ProvideTripController,
	ProvideChatController,
)

func ProvidePriceEstimator() services.PriceEstimatorInterface {
	return services.NewPriceEstimator()
}

func ProvidePromptBuilder() services.PromptBuilderInterface {
	return services.NewPromptBuilder()
}

func ProvideResponseExtractor(logger *zap.Logger) (services.ResponseExtractorInterface, error) {
	return services.NewResponseExtractor(logger.Named("extractor"))
}

func ProvideTripValidator(logger *zap.Logger) services.TripValidatorInterface {
	return services.NewTripValidator(logger.Named("validator"))
}

func ProvideTripEnricher(estimator services.PriceEstimatorInterface, cfg *config.Config, logger *zap.Logger) services.TripEnricherInterface {
	logger.Info("trip enrichment mode", zap.Bool("reprice_with_estimator", cfg.Pipeline.RepriceWithEstimator))
	return services.NewTripEnricher(estimator, cfg.Pipeline.RepriceWithEstimator, logger.Named("enricher"))
}

// ProvideTripService assembles the generation pipeline.
func ProvideTripService(
	builder services.PromptBuilderInterface,
	generator utils.TextGeneratorInterface,
	extractor services.ResponseExtractorInterface,
	validator services.TripValidatorInterface,
	enricher services.TripEnricherInterface,
	cache mem.TripCache,
	cfg *config.Config,
	logger *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(services.TripServiceDeps{
		Builder:         builder,
		Generator:       generator,
		Extractor:       extractor,
		Validator:       validator,
		Enricher:        enricher,
		Cache:           cache,
		Timeout:         cfg.LLM.Timeout,
		MaxResultsLimit: cfg.Pipeline.MaxResultsLimit,
		Logger:          logger.Named("trips"),
	})
}

func ProvideChatService(generator utils.TextGeneratorInterface, cfg *config.Config, logger *zap.Logger) services.ChatServiceInterface {
	return services.NewChatService(generator, cfg.LLM.Timeout, logger.Named("chat"))
}

func ProvideTripController(tripService services.TripServiceInterface, cfg *config.Config, logger *zap.Logger) *controllers.TripController {
	return controllers.NewTripController(tripService, cfg.Pipeline.DefaultMaxResults, cfg.Pipeline.MaxResultsLimit, logger)
}

func ProvideChatController(chatService services.ChatServiceInterface, logger *zap.Logger) *controllers.ChatController {
	return controllers.NewChatController(chatService, logger)
}
