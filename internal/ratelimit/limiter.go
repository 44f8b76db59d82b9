package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/config"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

const (
	DEFAULT_KEY_PREFIX          = "agrichain:ratelimit:"
	DEFAULT_MAX_LOCAL_KEYS      = 10000
	DEFAULT_HEALTH_CHECK_PERIOD = 10 * time.Second
)

// Decision is the outcome of one admission check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long a denied caller should wait; zero when allowed
	RetryAfter time.Duration
	// ResetAfter is how long until the bucket is full again
	ResetAfter time.Duration
}

// Limiter admits requests per key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow takes one token for key. An error means neither Redis nor the local fallback could decide.
	Allow(ctx context.Context, key string) (Decision, error)

	// Close stops the Redis health monitor. The Redis client is owned by the caller.
	Close() error
}

type limiter struct {
	config         config.RateLimitConfig
	distributed    adapter.RedisRateLimiter
	redis          adapter.RedisClient
	clock          adapter.Clock
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	stopCh         chan struct{}

	mu     sync.Mutex
	locals map[string]*rate.Limiter
}

// NewLimiter creates a Redis-backed limiter with an optional in-process fallback
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, rate limiting will use local fallback", zap.Error(err))
	}

	l := &limiter{
		config:      cfg,
		distributed: rc.NewRateLimiter(),
		redis:       rc,
		clock:       clock,
		stopCh:      make(chan struct{}),
		locals:      make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Allow asks Redis first and falls back to the per-key local bucket
func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.closed.Load() {
		return Decision{}, fmt.Errorf("rate limiter is closed")
	}

	if l.redisAvailable.Load() {
		decision, err := l.allowDistributed(ctx, key)
		if err == nil {
			return decision, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		l.redisAvailable.Store(false)
		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if !l.config.EnableLocalFallback {
		return Decision{}, fmt.Errorf("redis rate limiter unavailable")
	}
	return l.allowLocal(key), nil
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	limit := redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	}

	res, err := l.distributed.Allow(ctx, l.config.RedisKeyPrefix+key, limit)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Allowed:    res.Allowed > 0,
		Limit:      l.config.Burst,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
	}
	if !decision.Allowed {
		decision.RetryAfter = res.RetryAfter
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
		)
	}
	return decision, nil
}

// allowLocal admits against an in-process bucket at a reduced rate, since each replica keeps its own
func (l *limiter) allowLocal(key string) Decision {
	now := l.clock.Now()
	local := l.localLimiter(key)

	decision := Decision{Limit: l.config.Burst}

	reservation := local.ReserveN(now, 1)
	if !reservation.OK() {
		return decision
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		decision.RetryAfter = delay
		return decision
	}

	decision.Allowed = true
	decision.Remaining = max(int(local.TokensAt(now)), 0)
	return decision
}

func (l *limiter) localLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if local, ok := l.locals[key]; ok {
		return local
	}

	// Buckets are only a fallback; dropping them all bounds memory
	if len(l.locals) >= l.config.MaxLocalKeys {
		l.locals = make(map[string]*rate.Limiter)
	}

	localRate := max(float64(l.config.RequestsPerSecond)*l.config.LocalFallbackMultiplier, 1.0)
	local := rate.NewLimiter(rate.Limit(localRate), l.config.Burst)
	l.locals[key] = local
	return local
}

// monitorRedisHealth re-enables the distributed limiter once Redis answers again
func (l *limiter) monitorRedisHealth() {
	for {
		select {
		case <-l.stopCh:
			return
		case <-l.clock.After(l.config.HealthCheckInterval):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx)
		cancel()

		available := err == nil
		if was := l.redisAvailable.Swap(available); !was && available {
			logger.Info("Redis connection restored, rate limiting is distributed again")
		}
	}
}

// Close stops the health monitor
func (l *limiter) Close() error {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.stopCh)
	})
	return nil
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}
	if cfg.MaxLocalKeys <= 0 {
		cfg.MaxLocalKeys = DEFAULT_MAX_LOCAL_KEYS
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = DEFAULT_HEALTH_CHECK_PERIOD
	}
	return nil
}
