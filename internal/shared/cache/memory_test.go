package cache_test

import (
	"context"
	"testing"
	"time"

	"go-timeconsole/internal/shared/cache"

	"github.com/stretchr/testify/assert"
)

func TestMemoryProvider_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := cache.NewMemoryProvider().WithClock(func() time.Time { return now })

	assert.NoError(t, p.Set(ctx, "perm", []byte("1"), time.Minute))

	got, err := p.Get(ctx, "perm")
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	now = now.Add(time.Minute)
	_, err = p.Get(ctx, "perm")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryProvider_SetIfAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := cache.NewMemoryProvider().WithClock(func() time.Time { return now })

	ok, _ := p.SetIfAbsent(ctx, "lock", []byte("a"), 10*time.Second)
	assert.True(t, ok)
	ok, _ = p.SetIfAbsent(ctx, "lock", []byte("b"), 10*time.Second)
	assert.False(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = p.SetIfAbsent(ctx, "lock", []byte("b"), 10*time.Second)
	assert.True(t, ok)

	assert.NoError(t, p.Delete(ctx, "lock"))
	_, err := p.Get(ctx, "lock")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
