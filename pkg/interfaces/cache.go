package interfaces

import (
	"context"
	"time"
)

// ErrCacheMiss is the conventional lookup failure; providers return an error
// satisfying errors.Is against this value when a key is absent or expired.
type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache: miss" }

// ErrCacheMiss reports an absent or expired cache entry.
var ErrCacheMiss error = cacheMissError{}

// CacheProvider is the single-node memoization contract used for template
// definition snapshots and resolved content items. Entries expire passively
// after their TTL; there is no background eviction and no cross-process
// invalidation.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
