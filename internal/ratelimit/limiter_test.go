package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Brian/AGRICHAIN/internal/config"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/ratelimit"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testLimiterMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
	now              time.Time
}

func setupTestLimiter(t *testing.T) *testLimiterMocks {
	ctrl := gomock.NewController(t)

	tm := &testLimiterMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
		now:              time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	// Health monitor never ticks in tests
	tm.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()
	tm.clock.EXPECT().Now().Return(tm.now).AnyTimes()

	return tm
}

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:             true,
		RequestsPerSecond:   10,
		Burst:               2,
		RedisKeyPrefix:      "test:limiter:",
		EnableLocalFallback: true,
	}
}

func newTestLimiter(t *testing.T, tm *testLimiterMocks, cfg config.RateLimitConfig, pingErr error) ratelimit.Limiter {
	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(pingErr)
	tm.redisClient.EXPECT().NewRateLimiter().Return(tm.redisRateLimiter)

	l, err := ratelimit.NewLimiter(cfg, tm.redisClient, tm.clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	cfg := testConfig()
	cfg.RequestsPerSecond = 0

	_, err := ratelimit.NewLimiter(cfg, tm.redisClient, tm.clock)
	assert.Error(t, err)
}

func TestNewLimiter_RedisDownWithoutFallback(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	cfg := testConfig()
	cfg.EnableLocalFallback = false

	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	_, err := ratelimit.NewLimiter(cfg, tm.redisClient, tm.clock)
	assert.Error(t, err)
}

func TestAllow_Distributed(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	l := newTestLimiter(t, tm, testConfig(), nil)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:limiter:buyer:b-1", redis_rate.Limit{Rate: 10, Burst: 2, Period: time.Second}).
		Return(&redis_rate.Result{Allowed: 1, Remaining: 1, ResetAfter: 100 * time.Millisecond}, nil)

	decision, err := l.Allow(context.Background(), "buyer:b-1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.Limit)
	assert.Equal(t, 1, decision.Remaining)
	assert.Zero(t, decision.RetryAfter)
}

func TestAllow_DistributedDenied(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	l := newTestLimiter(t, tm, testConfig(), nil)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&redis_rate.Result{Allowed: 0, Remaining: 0, RetryAfter: 300 * time.Millisecond}, nil)

	decision, err := l.Allow(context.Background(), "buyer:b-1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 300*time.Millisecond, decision.RetryAfter)
}

func TestAllow_RedisErrorFallsBackToLocal(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	l := newTestLimiter(t, tm, testConfig(), nil)

	// Redis is consulted once, then marked unavailable until the health check passes
	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("i/o timeout")).
		Times(1)

	ctx := context.Background()
	first, err := l.Allow(ctx, "buyer:b-1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	second, err := l.Allow(ctx, "buyer:b-1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)

	// Burst of 2 is spent and the clock does not move
	third, err := l.Allow(ctx, "buyer:b-1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Greater(t, third.RetryAfter, time.Duration(0))

	// Buckets are per key
	other, err := l.Allow(ctx, "buyer:b-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestAllow_RedisErrorWithoutFallback(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	cfg := testConfig()
	cfg.EnableLocalFallback = false
	l := newTestLimiter(t, tm, cfg, nil)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("i/o timeout"))

	_, err := l.Allow(context.Background(), "buyer:b-1")
	assert.Error(t, err)
}

func TestAllow_RedisDownAtStartUsesLocal(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	l := newTestLimiter(t, tm, testConfig(), errors.New("connection refused"))
	tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	decision, err := l.Allow(context.Background(), "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, decision.Remaining)
}

func TestAllow_AfterClose(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tm.ctrl.Finish()

	l := newTestLimiter(t, tm, testConfig(), nil)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	_, err := l.Allow(context.Background(), "buyer:b-1")
	assert.Error(t, err)
}
