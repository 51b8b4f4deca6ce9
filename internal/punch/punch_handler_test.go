package punch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timeconsole/internal/punch"
	puncherrors "go-timeconsole/internal/punch/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePunchService struct {
	listFn    func(ctx context.Context, req punch.ListPunchesRequest) ([]punch.PunchResponse, error)
	getByIDFn func(ctx context.Context, id string) (punch.PunchResponse, error)
}

func (f *fakePunchService) List(ctx context.Context, req punch.ListPunchesRequest) ([]punch.PunchResponse, error) {
	return f.listFn(ctx, req)
}
func (f *fakePunchService) GetByID(ctx context.Context, id string) (punch.PunchResponse, error) {
	return f.getByIDFn(ctx, id)
}

func TestPunchHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success paginates", func(t *testing.T) {
		svc := &fakePunchService{
			listFn: func(ctx context.Context, req punch.ListPunchesRequest) ([]punch.PunchResponse, error) {
				assert.Equal(t, "emp_1", req.EmployeeID)
				assert.Equal(t, "2025-01-01", req.From)
				return []punch.PunchResponse{{ID: "pun_1"}, {ID: "pun_2"}, {ID: "pun_3"}}, nil
			},
		}
		h := punch.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/punches?employee_id=emp_1&from=2025-01-01&page=2&page_size=2", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []punch.PunchResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "pun_3", got[0].ID)
		assert.Equal(t, int64(3), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.Page)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakePunchService{
			listFn: func(ctx context.Context, req punch.ListPunchesRequest) ([]punch.PunchResponse, error) {
				return nil, puncherrors.ErrInvalidDateFormat
			},
		}
		h := punch.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/punches?from=bad", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestPunchHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakePunchService{
			getByIDFn: func(ctx context.Context, id string) (punch.PunchResponse, error) {
				assert.Equal(t, "pun_9", id)
				return punch.PunchResponse{}, puncherrors.ErrPunchNotFound
			},
		}
		h := punch.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/punches/pun_9", nil)
		c.Params = gin.Params{{Key: "id", Value: "pun_9"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}
