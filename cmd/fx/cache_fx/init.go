package cache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripsync/internal/config"
	"tripsync/internal/infra"
	mem "tripsync/pkg/memcache"
)

var Module = fx.Provide(ProvideTripCache)

// ProvideTripCache picks the response cache backend from cache.backend.
func ProvideTripCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.TripCache, error) {
	if cfg.Cache.Backend != "redis" {
		logger.Info("using in-memory trip cache", zap.Duration("ttl", cfg.Cache.TTL))
		return mem.NewMemoryTripCache(cfg.Cache.TTL, nil), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.Cache.RedisURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.CloseRedis(client, logger)
			return nil
		},
	})

	logger.Info("using redis trip cache", zap.Duration("ttl", cfg.Cache.TTL), zap.String("prefix", cfg.Cache.Prefix))
	return mem.NewRedisTripCache(client, cfg.Cache.TTL, cfg.Cache.Prefix, logger.Named("trip_cache")), nil
}
