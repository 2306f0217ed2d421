package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPermissionCache implements PermissionCache using Redis, for
// deployments running more than one API instance.
type RedisPermissionCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	keyPrefix  string
	logger     *zap.Logger
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisPermissionCacheOption is a functional option for configuring the cache
type RedisPermissionCacheOption func(*RedisPermissionCache)

// WithRedisPermissionTTL sets the default freshness window
func WithRedisPermissionTTL(ttl time.Duration) RedisPermissionCacheOption {
	return func(c *RedisPermissionCache) {
		c.ttl = ttl
	}
}

// WithRedisPermissionLogger sets the logger for the cache
func WithRedisPermissionLogger(logger *zap.Logger) RedisPermissionCacheOption {
	return func(c *RedisPermissionCache) {
		c.logger = logger
	}
}

// NewRedisPermissionCache creates a new Redis-based permission cache
func NewRedisPermissionCache(cfg RedisConfig, opts ...RedisPermissionCacheOption) (*RedisPermissionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisPermissionCache{
		client:     client,
		ownsClient: true,
		ttl:        DefaultPermissionTTL,
		keyPrefix:  "permissions:",
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisPermissionCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisPermissionCacheWithClient(client *redis.Client, opts ...RedisPermissionCacheOption) *RedisPermissionCache {
	cache := &RedisPermissionCache{
		client:     client,
		ownsClient: false,
		ttl:        DefaultPermissionTTL,
		keyPrefix:  "permissions:",
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisPermissionCache) cacheKey(userID, companyID uuid.UUID) string {
	return c.keyPrefix + permissionKey(userID, companyID)
}

// Get retrieves a permission set from Redis
func (c *RedisPermissionCache) Get(ctx context.Context, userID, companyID uuid.UUID) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.cacheKey(userID, companyID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get permissions from cache: %w", err)
	}

	var permissions []string
	if err := json.Unmarshal(data, &permissions); err != nil {
		c.logger.Error("Failed to unmarshal cached permissions", zap.Error(err))
		_ = c.client.Del(ctx, c.cacheKey(userID, companyID))
		return nil, false, fmt.Errorf("failed to unmarshal permissions: %w", err)
	}

	return permissions, true, nil
}

// Set stores a permission set in Redis
func (c *RedisPermissionCache) Set(ctx context.Context, userID, companyID uuid.UUID, permissions []string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf("failed to marshal permissions: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(userID, companyID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set permissions in cache: %w", err)
	}
	return nil
}

// Invalidate drops the entry for (user, company)
func (c *RedisPermissionCache) Invalidate(ctx context.Context, userID, companyID uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(userID, companyID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate permission cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if the cache owns it
func (c *RedisPermissionCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisPermissionCache implements PermissionCache
var _ PermissionCache = (*RedisPermissionCache)(nil)
