package lock

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

// KeyPrefix namespaces every key this service writes to the shared Redis
const KeyPrefix = "nftmirror"

// Manager acquires and releases per-collection discovery locks, backed by a
// TTL key in Redis. A crashed holder self-heals once the TTL expires.
//
//go:generate mockgen -source=lock.go -destination=../mocks/lock.go -package=mocks -mock_names=Manager=MockLockManager
type Manager interface {
	// TryAcquire attempts a single atomic set-if-not-exists with the kind's TTL.
	// It never blocks or retries; false means another refresh holds the lock.
	TryAcquire(ctx context.Context, contractAddress string, kind domain.RefreshKind) (bool, error)

	// Release deletes the lock key. Errors are logged, not propagated: the TTL
	// is the backstop.
	Release(ctx context.Context, contractAddress string, kind domain.RefreshKind)

	// Status reports whether the lock is held and how long until it expires
	Status(ctx context.Context, contractAddress string, kind domain.RefreshKind) (bool, time.Duration, error)
}

type redisManager struct {
	redis adapter.RedisClient
	clock adapter.Clock
}

// NewManager creates a Redis-backed lock manager
func NewManager(redis adapter.RedisClient, clock adapter.Clock) Manager {
	return &redisManager{redis: redis, clock: clock}
}

// Key returns the lock key for a collection and refresh kind,
// e.g. nftmirror:collection:0xabc...:refresh:lock
func Key(contractAddress string, kind domain.RefreshKind) string {
	return fmt.Sprintf("%s:collection:%s:%s:lock", KeyPrefix, domain.NormalizeContractAddress(contractAddress), kind)
}

// TryAcquire attempts a single atomic set-if-not-exists with expiry.
// If Redis is unavailable it fails open: serving the refresh matters more than
// perfect mutual exclusion for this best-effort mirror, and the row-level
// upsert keys converge overlapping writers anyway.
func (m *redisManager) TryAcquire(ctx context.Context, contractAddress string, kind domain.RefreshKind) (bool, error) {
	key := Key(contractAddress, kind)
	value := m.clock.Now().UTC().Format(time.RFC3339)

	acquired, err := m.redis.SetNX(ctx, key, value, kind.LockTTL()).Result()
	if err != nil {
		logger.WarnCtx(ctx, "lock store unavailable, failing open",
			zap.String("key", key),
			zap.Error(err))
		return true, nil
	}

	return acquired, nil
}

// Release deletes the lock key
func (m *redisManager) Release(ctx context.Context, contractAddress string, kind domain.RefreshKind) {
	key := Key(contractAddress, kind)
	if err := m.redis.Del(ctx, key).Err(); err != nil {
		logger.WarnCtx(ctx, "failed to release lock, TTL will expire it",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Status reports whether the lock is held and its remaining TTL
func (m *redisManager) Status(ctx context.Context, contractAddress string, kind domain.RefreshKind) (bool, time.Duration, error) {
	key := Key(contractAddress, kind)

	ttl, err := m.redis.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read lock ttl: %w", err)
	}

	// go-redis reports -2 for a missing key and -1 for a key without expiry
	if ttl <= 0 {
		return false, 0, nil
	}

	return true, ttl, nil
}
