package timezone_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/timezone"
	tzMock "go-timeconsole/internal/timezone/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestResolver_MemoizesPerRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := tzMock.NewMockLookup(ctrl)
	ctx := context.Background()

	lookup.EXPECT().
		LookupZone(gomock.Any(), "tz1").
		Return(timezone.Zone{CanonicalZone: "America/Chicago", DisplayName: "Central"}, nil).
		Times(1)

	r := timezone.NewResolver(lookup)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "America/Chicago", r.Resolve(ctx, "tz1").CanonicalZone)
		}()
	}
	wg.Wait()
	assert.Equal(t, "Central", r.Resolve(ctx, "tz1").DisplayName)
}

func TestResolver_FailureIsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := tzMock.NewMockLookup(ctrl)

	lookup.EXPECT().LookupZone(gomock.Any(), "tz-broken").Return(timezone.Zone{}, errors.New("store down")).Times(1)

	r := timezone.NewResolver(lookup)
	z := r.Resolve(context.Background(), "tz-broken")

	assert.False(t, z.Known())
	assert.False(t, r.Resolve(context.Background(), "tz-broken").Known())
	assert.False(t, r.Resolve(context.Background(), "").Known())
}

func TestStoreLookup(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory().Seed("tz",
		recordstore.Record{ID: "tzA", Fields: map[string]any{"timezone": "America/Denver", "Name": "Mountain Time"}},
	)
	lookup := timezone.NewStoreLookup(store, "tz")

	t.Run("record ref", func(t *testing.T) {
		z, err := lookup.LookupZone(ctx, "tzA")
		assert.NoError(t, err)
		assert.Equal(t, timezone.Zone{CanonicalZone: "America/Denver", DisplayName: "Mountain Time"}, z)
	})

	t.Run("canonical ref skips store", func(t *testing.T) {
		z, err := lookup.LookupZone(ctx, "Asia/Manila")
		assert.NoError(t, err)
		assert.Equal(t, "Asia/Manila", z.CanonicalZone)
	})

	t.Run("missing record is unknown", func(t *testing.T) {
		z, err := lookup.LookupZone(ctx, "tzZ")
		assert.NoError(t, err)
		assert.False(t, z.Known())
	})
}
