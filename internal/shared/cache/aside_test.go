package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-timeconsole/internal/shared/cache"

	"github.com/stretchr/testify/assert"
)

type totals struct {
	Minutes int `json:"minutes"`
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("miss loads and stores", func(t *testing.T) {
		p := cache.NewMemoryProvider()
		a := cache.NewAside(p)
		calls := 0

		load := func(context.Context) (totals, error) {
			calls++
			return totals{Minutes: 510}, nil
		}

		first, err := cache.Fetch(ctx, a, "pp:1", time.Minute, load)
		assert.NoError(t, err)
		second, err := cache.Fetch(ctx, a, "pp:1", time.Minute, load)
		assert.NoError(t, err)

		assert.Equal(t, 510, first.Minutes)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("load error is not cached", func(t *testing.T) {
		p := cache.NewMemoryProvider()
		a := cache.NewAside(p)

		_, err := cache.Fetch(ctx, a, "pp:2", time.Minute, func(context.Context) (totals, error) {
			return totals{}, errors.New("upstream down")
		})
		assert.EqualError(t, err, "upstream down")

		_, err = p.Get(ctx, "pp:2")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("nil provider still loads", func(t *testing.T) {
		a := cache.NewAside(nil)

		got, err := cache.Fetch(ctx, a, "pp:3", time.Minute, func(context.Context) (totals, error) {
			return totals{Minutes: 5}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, got.Minutes)
		a.Invalidate(ctx, "pp:3")
	})

	t.Run("concurrent callers share one load", func(t *testing.T) {
		a := cache.NewAside(nil)
		var calls int32
		release := make(chan struct{})

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = cache.Fetch(ctx, a, "pp:4", time.Minute, func(context.Context) (totals, error) {
					atomic.AddInt32(&calls, 1)
					<-release
					return totals{Minutes: 1}, nil
				})
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(5))
		assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	})
}
