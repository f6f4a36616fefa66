package imagery_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripsync/internal/api/controllers"
	"tripsync/internal/config"
	"tripsync/internal/services"
)

var Module = fx.Provide(
	ProvideImageService,
	controllers.NewImageController,
)

func ProvideImageService(cfg *config.Config, logger *zap.Logger) services.ImageServiceInterface {
	if cfg.Imagery.UnsplashAccessKey == "" {
		logger.Info("no Unsplash access key configured, trip images use placeholders")
	}
	return services.NewImageService(
		cfg.Imagery.UnsplashAccessKey,
		cfg.Imagery.UnsplashBaseURL,
		cfg.Imagery.Timeout,
		logger.Named("imagery"),
	)
}
