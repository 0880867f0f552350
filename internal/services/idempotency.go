package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/repository"
)

// IdempotencyKey builds the cache key for a side-effecting request.
// An empty request ID disables caching for that call.
func IdempotencyKey(method, path, requestID string) string {
	return method + ":" + path + ":" + requestID
}

// replayCached loads a cached response for key into out. Returns false
// when there is nothing to replay. Cache errors are logged and treated
// as a miss so a broken cache never blocks the request.
func replayCached(ctx context.Context, repo repository.IdempotencyRepository, key string, out any) bool {
	if key == "" || repo == nil {
		return false
	}
	log := logger.FromContext(ctx)

	cached, ok, err := repo.Get(ctx, key)
	if err != nil {
		log.Warn("idempotency lookup failed for %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(cached, out); err != nil {
		log.Warn("failed to decode cached response for %s: %v", key, err)
		return false
	}
	log.Debug("replaying cached response for %s", key)
	return true
}

// storeCached caches a response under key, best effort.
func storeCached(ctx context.Context, repo repository.IdempotencyRepository, key, userID string, response any, ttl time.Duration) {
	if key == "" || repo == nil {
		return
	}
	log := logger.FromContext(ctx)

	b, err := json.Marshal(response)
	if err != nil {
		log.Warn("failed to encode response for idempotency cache: %v", err)
		return
	}
	if err := repo.Put(ctx, key, userID, b, ttl); err != nil {
		log.Warn("failed to cache response for %s: %v", key, err)
	}
}
