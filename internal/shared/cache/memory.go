package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryProvider is a process local Provider for single instance
// deployments and tests. Expired entries are dropped lazily on read.
type MemoryProvider struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (p *MemoryProvider) WithClock(now func() time.Time) *MemoryProvider {
	p.now = now
	return p
}

func (p *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if p.expired(e) {
		delete(p.entries, key)
		return nil, ErrMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (p *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries[key] = p.entry(value, ttl)
	return nil
}

func (p *MemoryProvider) Delete(_ context.Context, keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, k := range keys {
		delete(p.entries, k)
	}
	return nil
}

func (p *MemoryProvider) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.entries[key]; ok && !p.expired(e) {
		return false, nil
	}
	p.entries[key] = p.entry(value, ttl)
	return true, nil
}

func (p *MemoryProvider) entry(value []byte, ttl time.Duration) memoryEntry {
	v := make([]byte, len(value))
	copy(v, value)
	e := memoryEntry{value: v}
	if ttl > 0 {
		e.expiresAt = p.now().Add(ttl)
	}
	return e
}

func (p *MemoryProvider) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !p.now().Before(e.expiresAt)
}
