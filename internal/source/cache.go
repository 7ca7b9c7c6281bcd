package source

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// Store keeps cached document bodies.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheOptions configures CachedSource.
type CacheOptions struct {
	TTL       time.Duration
	KeyPrefix string
	Logger    interfaces.Logger
}

// CachedSource serves documents from a Store before asking the wrapped
// source. The manifest is never cached. Store failures are logged and the
// wrapped source is used instead.
type CachedSource struct {
	inner      Source
	store      Store
	ttl        time.Duration
	prefix     string
	generation atomic.Uint64
	logger     interfaces.Logger
}

var (
	_ Source      = (*CachedSource)(nil)
	_ Invalidator = (*CachedSource)(nil)
)

// NewCachedSource wraps inner with store.
func NewCachedSource(inner Source, store Store, opts CacheOptions) *CachedSource {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "blogfront:doc:"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &CachedSource{
		inner:  inner,
		store:  store,
		ttl:    opts.TTL,
		prefix: prefix,
		logger: logger,
	}
}

// Manifest delegates to the wrapped source.
func (c *CachedSource) Manifest(ctx context.Context) ([]string, error) {
	return c.inner.Manifest(ctx)
}

// Document returns the cached body for file or fetches and stores it.
func (c *CachedSource) Document(ctx context.Context, file string) ([]byte, error) {
	key := c.key(file)
	logger := logging.WithPostContext(c.logger.WithContext(ctx), file, "cache")

	data, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("source.cache_get_failed", "error", err)
	case ok:
		return data, nil
	}

	data, err = c.inner.Document(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		logger.Warn("source.cache_set_failed", "error", err)
	}
	return data, nil
}

// Invalidate makes every previously cached entry unreachable. Stores that
// can be reset are emptied; other stores expire old entries through their
// TTL.
func (c *CachedSource) Invalidate() {
	c.generation.Add(1)
	if store, ok := c.store.(resettable); ok {
		store.Reset()
	}
}

type resettable interface {
	Reset()
}

func (c *CachedSource) key(file string) string {
	return c.prefix + strconv.FormatUint(c.generation.Load(), 10) + ":" + file
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

var (
	_ Store      = (*MemoryStore)(nil)
	_ resettable = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

// Get returns the live entry for key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

// Set stores value. A zero ttl never expires.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Reset drops every entry.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	m.entries = map[string]memoryEntry{}
	m.mu.Unlock()
}
