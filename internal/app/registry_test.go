package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-timeconsole/internal/auth"
	"go-timeconsole/internal/config"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := recordstore.NewMemory().
		Seed("tbl_departments",
			recordstore.Record{ID: "dep_1", Fields: map[string]any{"Name": "Field Ops"}},
		).
		Seed("tbl_user_app_access",
			recordstore.Record{ID: "acc_1", Fields: map[string]any{"user_id": "usr_viewer", "app_id": "hr"}},
		).
		Seed("tbl_user_permissions",
			recordstore.Record{ID: "perm_1", Fields: map[string]any{"user_id": "usr_viewer", "app_id": "hr", "view_id": "departments", "resource_type": "department", "actions": []any{"read"}}},
		)

	var cfg config.Config
	cfg.JWTSecret = testSecret
	cfg.Tables = config.Tables{
		Departments:     "tbl_departments",
		UserAppAccess:   "tbl_user_app_access",
		UserPermissions: "tbl_user_permissions",
	}
	cfg.BulkConcurrency = 1
	cfg.AggregateConcurrency = 1
	cfg.WindowLimit = 5
	cfg.BusinessTimezone = "UTC"
	cfg.CacheTTL.Permissions = time.Minute
	cfg.CacheTTL.Departments = time.Minute
	cfg.DecisionLockTTL = time.Second
	cfg.RateLimit.PerSecond = 100
	cfg.RateLimit.Burst = 100

	router := gin.New()
	inf := &platform{store: store, cache: cache.NewMemoryProvider()}
	require.NoError(t, registerModules(router, cfg, inf, zap.NewNop()))
	return router
}

func get(t *testing.T, router *gin.Engine, path, principal string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if principal != "" {
		token, err := auth.NewJWTVerifier(testSecret).Issue(principal, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterModules(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unauthenticated", func(t *testing.T) {
		w := get(t, router, "/api/v1/departments", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("permitted", func(t *testing.T) {
		w := get(t, router, "/api/v1/departments", "usr_viewer")
		require.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Data []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "Field Ops", env.Data[0].Name)
	})

	t.Run("not permitted", func(t *testing.T) {
		w := get(t, router, "/api/v1/punches", "usr_viewer")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
