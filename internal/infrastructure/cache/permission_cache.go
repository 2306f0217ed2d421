package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPermissionTTL bounds how stale a cached permission set may get.
// Role mutations must invalidate explicitly; the TTL is a backstop.
const DefaultPermissionTTL = 5 * time.Minute

const cleanupInterval = 30 * time.Second

// PermissionCache caches resolved permission sets keyed by (user, company).
type PermissionCache interface {
	// Get returns the cached permission set and whether it was present
	// and fresh
	Get(ctx context.Context, userID, companyID uuid.UUID) ([]string, bool, error)

	// Set stores a permission set. A zero ttl uses the cache default.
	Set(ctx context.Context, userID, companyID uuid.UUID, permissions []string, ttl time.Duration) error

	// Invalidate drops the entry for (user, company). Role mutations must
	// call this; waiting for TTL expiry is not acceptable for revocation.
	Invalidate(ctx context.Context, userID, companyID uuid.UUID) error

	// Close releases any resources held by the cache
	Close() error
}

func permissionKey(userID, companyID uuid.UUID) string {
	return userID.String() + ":" + companyID.String()
}

// permissionEntry wraps a cached permission set with its expiry
type permissionEntry struct {
	permissions []string
	expiresAt   time.Time
}

// InMemoryPermissionCache is the process-local permission cache. The clock
// is injectable so freshness behavior can be tested deterministically.
type InMemoryPermissionCache struct {
	entries sync.Map // map[string]*permissionEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// InMemoryPermissionCacheOption is a functional option for configuring the cache
type InMemoryPermissionCacheOption func(*InMemoryPermissionCache)

// WithPermissionTTL sets the default freshness window
func WithPermissionTTL(ttl time.Duration) InMemoryPermissionCacheOption {
	return func(c *InMemoryPermissionCache) {
		c.ttl = ttl
	}
}

// WithPermissionClock injects the clock used for expiry checks
func WithPermissionClock(now func() time.Time) InMemoryPermissionCacheOption {
	return func(c *InMemoryPermissionCache) {
		c.now = now
	}
}

// WithPermissionLogger sets the logger for the cache
func WithPermissionLogger(logger *zap.Logger) InMemoryPermissionCacheOption {
	return func(c *InMemoryPermissionCache) {
		c.logger = logger
	}
}

// NewInMemoryPermissionCache creates a new in-memory permission cache
func NewInMemoryPermissionCache(opts ...InMemoryPermissionCacheOption) *InMemoryPermissionCache {
	cache := &InMemoryPermissionCache{
		ttl:    DefaultPermissionTTL,
		now:    time.Now,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a fresh permission set from the cache
func (c *InMemoryPermissionCache) Get(_ context.Context, userID, companyID uuid.UUID) ([]string, bool, error) {
	key := permissionKey(userID, companyID)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*permissionEntry)
		if c.now().Before(entry.expiresAt) {
			atomic.AddInt64(&c.hits, 1)
			return entry.permissions, true, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a permission set with the given TTL
func (c *InMemoryPermissionCache) Set(_ context.Context, userID, companyID uuid.UUID, permissions []string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	c.entries.Store(permissionKey(userID, companyID), &permissionEntry{
		permissions: permissions,
		expiresAt:   c.now().Add(ttl),
	})
	return nil
}

// Invalidate drops the entry for (user, company)
func (c *InMemoryPermissionCache) Invalidate(_ context.Context, userID, companyID uuid.UUID) error {
	c.entries.Delete(permissionKey(userID, companyID))
	c.logger.Debug("Invalidated permission cache entry",
		zap.String("user_id", userID.String()),
		zap.String("company_id", companyID.String()))
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryPermissionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryPermissionCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryPermissionCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := c.now()
			c.entries.Range(func(key, value any) bool {
				entry := value.(*permissionEntry)
				if now.After(entry.expiresAt) {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryPermissionCache implements PermissionCache
var _ PermissionCache = (*InMemoryPermissionCache)(nil)
