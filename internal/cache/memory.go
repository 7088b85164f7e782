// Package cache provides the single-node TTL memoization backing content
// and template definition lookups. Entries expire passively on the next
// access; there is no eviction goroutine and no cross-process invalidation.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-external-content/pkg/interfaces"
)

// Memory is a concurrency-safe TTL cache. Reads take the shared lock so the
// read-mostly workload never serializes on the hot path.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Option configures the memory cache.
type Option func(*Memory)

// WithClock overrides the time source, used by expiry tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Memory) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMemory constructs an empty memory cache.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ interfaces.CacheProvider = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) (any, error) {
	m.mu.RLock()
	item, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	if m.expired(item) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, still := m.entries[key]; still && m.expired(current) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, interfaces.ErrCacheMiss
	}
	return item.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	item := entry{value: value}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = item
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) expired(item entry) bool {
	return !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt)
}
