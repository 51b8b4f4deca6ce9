package recordstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-timeconsole/internal/recordstore"
	storeMock "go-timeconsole/internal/recordstore/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func page(n, start int, hasMore bool) recordstore.ListResult {
	res := recordstore.ListResult{HasMore: hasMore}
	for i := 0; i < n; i++ {
		res.Records = append(res.Records, recordstore.Record{ID: fmt.Sprintf("r%d", start+i)})
	}
	return res
}

func TestPager_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("follows hasMore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storeMock.NewMockStore(ctrl)
		pager := recordstore.Pager{PageSize: 2, MaxRecords: 100}

		gomock.InOrder(
			store.EXPECT().List(ctx, "t", recordstore.ListQuery{Limit: 2, Offset: 0}).Return(page(2, 0, true), nil),
			store.EXPECT().List(ctx, "t", recordstore.ListQuery{Limit: 2, Offset: 2}).Return(page(1, 2, false), nil),
		)

		got, err := pager.ListAll(ctx, store, "t", recordstore.ListQuery{})

		require.NoError(t, err)
		assert.Equal(t, []string{"r0", "r1", "r2"}, ids(got))
	})

	t.Run("store caps each page below page size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storeMock.NewMockStore(ctrl)
		const total, storeCap = 250, 100

		store.EXPECT().List(ctx, "t", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, q recordstore.ListQuery) (recordstore.ListResult, error) {
				assert.Equal(t, 2000, q.Limit)
				n := min(storeCap, total-q.Offset)
				return page(n, q.Offset, q.Offset+n < total), nil
			},
		).Times(3)

		got, err := recordstore.Pager{PageSize: 2000}.ListAll(ctx, store, "t", recordstore.ListQuery{})

		require.NoError(t, err)
		require.Len(t, got, total)
		assert.Equal(t, "r0", got[0].ID)
		assert.Equal(t, "r100", got[100].ID)
		assert.Equal(t, "r249", got[total-1].ID)
	})

	t.Run("stops at safety cap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storeMock.NewMockStore(ctrl)
		core, logs := observer.New(zap.WarnLevel)
		pager := recordstore.Pager{PageSize: 2, MaxRecords: 3, Logger: zap.New(core)}

		store.EXPECT().List(ctx, "t", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, q recordstore.ListQuery) (recordstore.ListResult, error) {
				return page(2, q.Offset, true), nil
			},
		).Times(2)

		got, err := pager.ListAll(ctx, store, "t", recordstore.ListQuery{})

		require.NoError(t, err)
		assert.Len(t, got, 3)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "record list truncated at max records", logs.All()[0].Message)
	})

	t.Run("page error aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storeMock.NewMockStore(ctrl)

		store.EXPECT().List(ctx, "t", gomock.Any()).Return(recordstore.ListResult{}, errors.New("boom"))

		_, err := recordstore.Pager{}.ListAll(ctx, store, "t", recordstore.ListQuery{})
		assert.EqualError(t, err, "boom")
	})
}
