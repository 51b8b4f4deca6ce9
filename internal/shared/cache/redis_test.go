package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-timeconsole/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		p := cache.NewRedisProvider(rdb)
		mock.ExpectGet("names:emp-1").SetVal(`"Ada"`)

		got, err := p.Get(ctx, "names:emp-1")

		assert.NoError(t, err)
		assert.Equal(t, `"Ada"`, string(got))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss maps to ErrMiss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		p := cache.NewRedisProvider(rdb)
		mock.ExpectGet("names:emp-2").RedisNil()

		_, err := p.Get(ctx, "names:emp-2")

		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("backend error passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		p := cache.NewRedisProvider(rdb)
		mock.ExpectGet("names:emp-3").SetErr(errors.New("connection reset"))

		_, err := p.Get(ctx, "names:emp-3")

		assert.EqualError(t, err, "connection reset")
		assert.NotErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("set and delete", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		p := cache.NewRedisProvider(rdb)
		mock.ExpectSet("k", []byte("v"), time.Minute).SetVal("OK")
		mock.ExpectDel("k", "k2").SetVal(2)

		assert.NoError(t, p.Set(ctx, "k", []byte("v"), time.Minute))
		assert.NoError(t, p.Delete(ctx, "k", "k2"))
		assert.NoError(t, p.Delete(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set if absent", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		p := cache.NewRedisProvider(rdb)
		mock.ExpectSetNX("lock", []byte("owner"), 30*time.Second).SetVal(true)
		mock.ExpectSetNX("lock", []byte("owner"), 30*time.Second).SetVal(false)

		first, err := p.SetIfAbsent(ctx, "lock", []byte("owner"), 30*time.Second)
		assert.NoError(t, err)
		assert.True(t, first)

		second, err := p.SetIfAbsent(ctx, "lock", []byte("owner"), 30*time.Second)
		assert.NoError(t, err)
		assert.False(t, second)
	})
}
