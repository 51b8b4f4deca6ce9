package punch_test

import (
	"context"
	"errors"
	"testing"

	"go-timeconsole/internal/punch"
	puncherrors "go-timeconsole/internal/punch/errors"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/timezone"
	tzmock "go-timeconsole/internal/timezone/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const punchTable = "tbl_punches"

type fakeNames struct {
	namesFn func(ctx context.Context, ids []string) (map[string]string, error)
}

func (f *fakeNames) Names(ctx context.Context, ids []string) (map[string]string, error) {
	if f.namesFn != nil {
		return f.namesFn(ctx, ids)
	}
	return nil, nil
}

func seededStore() *recordstore.Memory {
	return recordstore.NewMemory().Seed(punchTable,
		recordstore.Record{ID: "pun_1", Fields: map[string]any{
			"employee_id":    []any{"emp_1"},
			"punch_in_time":  "2025-01-10T15:00:00Z",
			"punch_out_time": "2025-01-10T23:30:00Z",
			"timezone":       []any{"tz_chi"},
		}},
		recordstore.Record{ID: "pun_2", Fields: map[string]any{
			"employee_id":   []any{"emp_2"},
			"punch_in_time": "2025-01-12T15:00:00Z",
		}},
		recordstore.Record{ID: "pun_3", Fields: map[string]any{
			"employee_id":    []any{"emp_1"},
			"punch_in_time":  "2025-02-01T15:00:00Z",
			"punch_out_time": "2025-02-01T16:00:00Z",
		}},
	)
}

func TestPunchService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success filters range and resolves zones once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := tzmock.NewMockLookup(ctrl)
		lookup.EXPECT().LookupZone(gomock.Any(), "tz_chi").
			Return(timezone.Zone{CanonicalZone: "America/Chicago", DisplayName: "Central"}, nil).
			Times(1)

		repo := punch.NewRepository(seededStore(), punchTable, recordstore.Pager{})
		names := &fakeNames{namesFn: func(ctx context.Context, ids []string) (map[string]string, error) {
			assert.ElementsMatch(t, []string{"emp_1", "emp_2"}, ids)
			return map[string]string{"emp_1": "Ada Lovelace"}, nil
		}}
		svc := punch.NewService(repo, lookup, names)

		got, err := svc.List(ctx, punch.ListPunchesRequest{From: "2025-01-01", To: "2025-01-31"})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "pun_2", got[0].ID)
		assert.Nil(t, got[0].DurationMinutes)

		first := got[1]
		assert.Equal(t, "pun_1", first.ID)
		assert.Equal(t, "Ada Lovelace", first.EmployeeName)
		require.NotNil(t, first.DurationMinutes)
		assert.Equal(t, 510, *first.DurationMinutes)
		assert.Equal(t, "2025-01-10 09:00 CT", first.PunchInLocal)
		assert.Equal(t, "2025-01-10 17:30 CT", first.PunchOutLocal)
		assert.Equal(t, "CT", first.Timezone.Abbreviation)
		assert.Equal(t, "tz_chi", first.PunchOutZone.Ref)
	})

	t.Run("success employee scoped", func(t *testing.T) {
		repo := punch.NewRepository(seededStore(), punchTable, recordstore.Pager{})
		svc := punch.NewService(repo, nil, nil)

		got, err := svc.List(ctx, punch.ListPunchesRequest{EmployeeID: "emp_1"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, p := range got {
			assert.Equal(t, "emp_1", p.EmployeeID)
			assert.Equal(t, []string{}, p.ProjectIDs)
		}
	})

	t.Run("name lookup failure still lists", func(t *testing.T) {
		repo := punch.NewRepository(seededStore(), punchTable, recordstore.Pager{})
		names := &fakeNames{namesFn: func(ctx context.Context, ids []string) (map[string]string, error) {
			return nil, errors.New("directory down")
		}}
		svc := punch.NewService(repo, nil, names)

		got, err := svc.List(ctx, punch.ListPunchesRequest{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Empty(t, got[0].EmployeeName)
	})

	t.Run("negative invalid date", func(t *testing.T) {
		svc := punch.NewService(punch.NewRepository(seededStore(), punchTable, recordstore.Pager{}), nil, nil)
		_, err := svc.List(ctx, punch.ListPunchesRequest{From: "01/02/2025"})
		assert.Equal(t, puncherrors.ErrInvalidDateFormat, err)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		svc := punch.NewService(punch.NewRepository(seededStore(), punchTable, recordstore.Pager{}), nil, nil)
		_, err := svc.List(ctx, punch.ListPunchesRequest{From: "2025-02-01", To: "2025-01-01"})
		assert.Equal(t, puncherrors.ErrInvalidDateRange, err)
	})

	t.Run("negative store failure is upstream", func(t *testing.T) {
		store := seededStore()
		store.Fail = func(op, table, id string) error { return errors.New("timeout") }
		svc := punch.NewService(punch.NewRepository(store, punchTable, recordstore.Pager{}), nil, nil)

		_, err := svc.List(ctx, punch.ListPunchesRequest{})
		assert.True(t, apperror.Is(err, apperror.CodeUpstreamFailure))
	})
}

func TestPunchService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := punch.NewService(punch.NewRepository(seededStore(), punchTable, recordstore.Pager{}), nil, nil)

	t.Run("success", func(t *testing.T) {
		got, err := svc.GetByID(ctx, "pun_3")
		require.NoError(t, err)
		require.NotNil(t, got.DurationMinutes)
		assert.Equal(t, 60, *got.DurationMinutes)
		assert.Equal(t, "2025-02-01 15:00 UTC", got.PunchInLocal)
	})

	t.Run("negative not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "pun_missing")
		assert.Equal(t, puncherrors.ErrPunchNotFound, err)
	})
}
