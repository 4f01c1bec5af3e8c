package translate

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory wraps an Engine with an in-process TTL cache keyed on the
// protected sentence and language pair. Identical sentences across
// requests (form boilerplate, re-submissions) skip the network round trip.
// Cached entries hold protected text only for as long as the TTL; nothing
// is persisted.
type Memory struct {
	inner Engine
	cache *gocache.Cache
}

// NewMemory wraps inner with a TTL cache. ttl ≤ 0 disables expiry-based
// eviction beyond the default 30 minutes.
func NewMemory(inner Engine, ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Memory{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (m *Memory) Name() string {
	return m.inner.Name()
}

// Translate returns a cached result when available, otherwise delegates to
// the wrapped engine and caches the success. Failures are never cached.
func (m *Memory) Translate(ctx context.Context, req Request) (*Result, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", m.inner.Name(), req.SourceLang, req.TargetLang, req.Text)
	if hit, found := m.cache.Get(key); found {
		if res, ok := hit.(*Result); ok {
			return res, nil
		}
	}

	res, err := m.inner.Translate(ctx, req)
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, res, gocache.DefaultExpiration)
	return res, nil
}

func (m *Memory) IsAvailable(ctx context.Context) error {
	return m.inner.IsAvailable(ctx)
}
