package lock_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/lock"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/mocks"
)

const testAddress = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func setupLockTest(t *testing.T) (*mocks.MockRedisClient, *mocks.MockClock, lock.Manager) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	redisClient := mocks.NewMockRedisClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	return redisClient, clock, lock.NewManager(redisClient, clock)
}

func TestKey(t *testing.T) {
	assert.Equal(t,
		"nftmirror:collection:"+testAddress+":refresh:lock",
		lock.Key(testAddress, domain.RefreshKindLight))
	assert.Equal(t,
		"nftmirror:collection:"+testAddress+":populate:lock",
		lock.Key(testAddress, domain.RefreshKindPopulate))

	// Addresses are normalized into the key
	assert.Equal(t,
		lock.Key(testAddress, domain.RefreshKindLight),
		lock.Key("0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", domain.RefreshKindLight))
}

func TestTryAcquire(t *testing.T) {
	redisClient, clock, manager := setupLockTest(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	clock.EXPECT().Now().Return(now)
	redisClient.EXPECT().
		SetNX(gomock.Any(), lock.Key(testAddress, domain.RefreshKindLight), now.Format(time.RFC3339), 5*time.Minute).
		Return(redis.NewBoolResult(true, nil))

	acquired, err := manager.TryAcquire(context.Background(), testAddress, domain.RefreshKindLight)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestTryAcquire_Contention(t *testing.T) {
	redisClient, clock, manager := setupLockTest(t)

	clock.EXPECT().Now().Return(time.Now())
	redisClient.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(redis.NewBoolResult(false, nil))

	acquired, err := manager.TryAcquire(context.Background(), testAddress, domain.RefreshKindLight)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestTryAcquire_FailsOpenOnRedisError(t *testing.T) {
	redisClient, clock, manager := setupLockTest(t)

	clock.EXPECT().Now().Return(time.Now())
	redisClient.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(redis.NewBoolResult(false, errors.New("connection refused")))

	acquired, err := manager.TryAcquire(context.Background(), testAddress, domain.RefreshKindPopulate)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRelease(t *testing.T) {
	redisClient, _, manager := setupLockTest(t)

	redisClient.EXPECT().
		Del(gomock.Any(), lock.Key(testAddress, domain.RefreshKindLight)).
		Return(redis.NewIntResult(1, nil))

	manager.Release(context.Background(), testAddress, domain.RefreshKindLight)
}

func TestRelease_ErrorIsSwallowed(t *testing.T) {
	redisClient, _, manager := setupLockTest(t)

	redisClient.EXPECT().
		Del(gomock.Any(), gomock.Any()).
		Return(redis.NewIntResult(0, errors.New("connection refused")))

	// Must not panic or fail; the TTL is the backstop
	manager.Release(context.Background(), testAddress, domain.RefreshKindLight)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		held     bool
		expected time.Duration
	}{
		{"held", 3 * time.Minute, true, 3 * time.Minute},
		{"missing key", -2 * time.Nanosecond, false, 0},
		{"no expiry", -1 * time.Nanosecond, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisClient, _, manager := setupLockTest(t)

			redisClient.EXPECT().
				TTL(gomock.Any(), lock.Key(testAddress, domain.RefreshKindPopulate)).
				Return(redis.NewDurationResult(tt.ttl, nil))

			held, remaining, err := manager.Status(context.Background(), testAddress, domain.RefreshKindPopulate)
			require.NoError(t, err)
			assert.Equal(t, tt.held, held)
			assert.Equal(t, tt.expected, remaining)
		})
	}
}

func TestStatus_RedisError(t *testing.T) {
	redisClient, _, manager := setupLockTest(t)

	redisClient.EXPECT().
		TTL(gomock.Any(), gomock.Any()).
		Return(redis.NewDurationResult(0, errors.New("connection refused")))

	_, _, err := manager.Status(context.Background(), testAddress, domain.RefreshKindLight)
	assert.Error(t, err)
}
