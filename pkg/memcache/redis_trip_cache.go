package mem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripsync/internal/models/response_models"
)

// RedisTripCache shares the response cache between replicas. Redis expires
// keys on its own; createdAt is stored alongside for diagnostics.
type RedisTripCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

type redisTripEntry struct {
	CreatedAt time.Time                       `json:"createdAt"`
	Trips     []response_models.TripCandidate `json:"trips"`
}

func NewRedisTripCache(client *redis.Client, ttl time.Duration, prefix string, logger *zap.Logger) *RedisTripCache {
	return &RedisTripCache{client: client, ttl: ttl, prefix: prefix, logger: logger}
}

// redisKey hashes the canonical request so arbitrary user text never ends up
// in a key.
func (c *RedisTripCache) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *RedisTripCache) Get(ctx context.Context, key string) ([]response_models.TripCandidate, bool) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var entry redisTripEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("corrupt redis cache entry", zap.Error(err))
		return nil, false
	}
	return entry.Trips, true
}

func (c *RedisTripCache) Put(ctx context.Context, key string, trips []response_models.TripCandidate) {
	if trips == nil {
		trips = []response_models.TripCandidate{}
	}
	b, err := json.Marshal(redisTripEntry{CreatedAt: time.Now().UTC(), Trips: trips})
	if err != nil {
		c.logger.Warn("redis cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.redisKey(key), b, c.ttl).Err(); err != nil {
		c.logger.Warn("redis cache write failed", zap.Error(err))
	}
}
