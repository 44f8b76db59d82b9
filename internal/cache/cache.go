package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/canonical"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

const (
	// NamespaceProducts holds product listing queries
	NamespaceProducts = "products"
	// NamespaceDeliveries holds warehouse delivery listings
	NamespaceDeliveries = "deliveries"
	// NamespaceInventory holds inventory lot listings
	NamespaceInventory = "inventory"
	// NamespaceInspections holds inspection listings and report stats
	NamespaceInspections = "inspections"

	DEFAULT_TTL    = 5 * time.Minute
	DEFAULT_PREFIX = "agrichain"
)

// Cache is a read-through query cache. Keys are derived from the canonical
// fingerprint of the query so equal queries share an entry regardless of field order.
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get loads the cached result of query into dest and reports whether it was found
	Get(ctx context.Context, namespace string, query any, dest any) (bool, error)
	// Set stores the result of query
	Set(ctx context.Context, namespace string, query any, value any) error
	// Invalidate drops every entry of a namespace
	Invalidate(ctx context.Context, namespace string) error
}

// Config holds the cache configuration
type Config struct {
	Prefix string
	TTL    time.Duration
}

type redisCache struct {
	client adapter.RedisClient
	json   adapter.JSON
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache backed by Redis
func NewRedisCache(client adapter.RedisClient, json adapter.JSON, cfg Config) Cache {
	if cfg.Prefix == "" {
		cfg.Prefix = DEFAULT_PREFIX
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DEFAULT_TTL
	}

	return &redisCache{
		client: client,
		json:   json,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}
}

func (c *redisCache) namespacePrefix(namespace string) string {
	return fmt.Sprintf("%s:%s:", c.prefix, namespace)
}

func (c *redisCache) key(namespace string, query any) (string, error) {
	fingerprint, _, err := canonical.Fingerprint(query)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint cache query: %w", err)
	}
	return c.namespacePrefix(namespace) + fingerprint, nil
}

// Get loads a cached result
func (c *redisCache) Get(ctx context.Context, namespace string, query any, dest any) (bool, error) {
	key, err := c.key(namespace, query)
	if err != nil {
		return false, err
	}

	data, err := c.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, adapter.ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if err := c.json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return true, nil
}

// Set stores a result
func (c *redisCache) Set(ctx context.Context, namespace string, query any, value any) error {
	key, err := c.key(namespace, query)
	if err != nil {
		return err
	}

	data, err := c.json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}

// Invalidate drops every entry of a namespace
func (c *redisCache) Invalidate(ctx context.Context, namespace string) error {
	deleted, err := c.client.DeleteByPrefix(ctx, c.namespacePrefix(namespace))
	if err != nil {
		return fmt.Errorf("failed to invalidate cache namespace %s: %w", namespace, err)
	}

	logger.DebugCtx(ctx, "Invalidated cache namespace", zap.String("namespace", namespace), zap.Int64("deleted", deleted))
	return nil
}

type noopCache struct{}

// NewNoopCache creates a cache that never stores anything
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any, any) error         { return nil }
func (noopCache) Invalidate(context.Context, string) error            { return nil }

// GetOrLoad returns the cached result of query or loads and caches it.
// Cache failures are logged and never fail the read.
func GetOrLoad[T any](ctx context.Context, c Cache, namespace string, query any, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, namespace, query, &cached)
	if err != nil {
		logger.WarnCtx(ctx, "Cache read failed, loading from store", zap.String("namespace", namespace), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, namespace, query, value); err != nil {
		logger.WarnCtx(ctx, "Cache write failed", zap.String("namespace", namespace), zap.Error(err))
	}

	return value, nil
}

// InvalidateAll drops several namespaces, logging failures.
// A stale entry lives at most one TTL so invalidation never fails a write.
func InvalidateAll(ctx context.Context, c Cache, namespaces ...string) {
	for _, ns := range namespaces {
		if err := c.Invalidate(ctx, ns); err != nil {
			logger.WarnCtx(ctx, "Cache invalidation failed", zap.String("namespace", ns), zap.Error(err))
		}
	}
}
