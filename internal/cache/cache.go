// Package cache is the Redis-backed read cache and its invalidation bus.
//
// Invalidation is coarse on purpose: every key under a collection's prefix is
// deleted after a refresh. Over-invalidation is acceptable; under-invalidation
// is not.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/lock"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

const (
	// scanBatch is the COUNT hint for SCAN iterations
	scanBatch = 100
	// defaultPageTTL bounds staleness for consumers that miss invalidation events
	defaultPageTTL = 10 * time.Minute
)

// Cache provides collection-scoped read caching and group invalidation
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// GetPage returns a cached payload for a collection-scoped key, or nil on miss
	GetPage(ctx context.Context, contractAddress, name string) ([]byte, error)

	// SetPage stores a payload under a collection-scoped key with the default TTL
	SetPage(ctx context.Context, contractAddress, name string, payload []byte) error

	// Invalidate deletes every cached key under the collection's prefix
	Invalidate(ctx context.Context, contractAddress string) (int64, error)
}

type redisCache struct {
	redis adapter.RedisClient
}

// New creates a Redis-backed cache
func New(redis adapter.RedisClient) Cache {
	return &redisCache{redis: redis}
}

// pageKey builds a collection-scoped cache key,
// e.g. nftmirror:collection:0xabc...:page:nfts:0:50
func pageKey(contractAddress, name string) string {
	return fmt.Sprintf("%s:collection:%s:%s", lock.KeyPrefix, domain.NormalizeContractAddress(contractAddress), name)
}

// GetPage returns a cached payload, or nil on miss. Redis errors degrade to a
// miss so an unavailable cache never blocks reads.
func (c *redisCache) GetPage(ctx context.Context, contractAddress, name string) ([]byte, error) {
	payload, err := c.redis.Get(ctx, pageKey(contractAddress, name)).Bytes()
	if err != nil {
		return nil, nil
	}
	return payload, nil
}

// SetPage stores a payload with the default TTL
func (c *redisCache) SetPage(ctx context.Context, contractAddress, name string, payload []byte) error {
	if err := c.redis.Set(ctx, pageKey(contractAddress, name), payload, defaultPageTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache page: %w", err)
	}
	return nil
}

// Invalidate scans and deletes every key under the collection's prefix,
// excluding the lock keys which have their own lifecycle
func (c *redisCache) Invalidate(ctx context.Context, contractAddress string) (int64, error) {
	pattern := fmt.Sprintf("%s:collection:%s:*", lock.KeyPrefix, domain.NormalizeContractAddress(contractAddress))

	var deleted int64
	var cursor uint64
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		// Keep lock keys: deleting them would break mutual exclusion mid-refresh
		toDelete := keys[:0]
		for _, key := range keys {
			if key != lock.Key(contractAddress, domain.RefreshKindLight) &&
				key != lock.Key(contractAddress, domain.RefreshKindPopulate) {
				toDelete = append(toDelete, key)
			}
		}

		if len(toDelete) > 0 {
			n, err := c.redis.Del(ctx, toDelete...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	logger.DebugCtx(ctx, "cache invalidated",
		zap.String("contract_address", contractAddress),
		zap.Int64("keys_deleted", deleted))

	return deleted, nil
}
