package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-timeconsole/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeInvalidState, "not pending", http.StatusConflict)

		got := apperror.ToHTTP(fmt.Errorf("decide: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeInvalidState, got.Code)
		assert.Equal(t, "not pending", got.Message)
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})

	t.Run("upstream is 502", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.Upstream(errors.New("timeout"), ""))

		assert.Equal(t, http.StatusBadGateway, got.Status)
		assert.Equal(t, apperror.CodeUpstreamFailure, got.Code)
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", apperror.ErrNotFound)

	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	assert.False(t, apperror.Is(err, apperror.CodeConflict))
	assert.False(t, apperror.Is(errors.New("plain"), apperror.CodeNotFound))
}

type bulkBody struct {
	ReviewNotes string `validate:"required"`
	Outcome     string `validate:"oneof=approve reject"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()

	t.Run("required", func(t *testing.T) {
		err := v.Struct(bulkBody{Outcome: "approve"})

		mapped := apperror.MapValidationError(err)

		assert.Equal(t, "Reviewnotes is required", mapped.(*apperror.AppError).Message)
		assert.True(t, apperror.Is(mapped, apperror.CodeValidationError))
	})

	t.Run("oneof", func(t *testing.T) {
		err := v.Struct(bulkBody{ReviewNotes: "ok", Outcome: "maybe"})

		mapped := apperror.MapValidationError(err)

		assert.Contains(t, mapped.Error(), "must be one of: approve reject")
	})

	t.Run("non validator error", func(t *testing.T) {
		mapped := apperror.MapValidationError(errors.New("EOF"))

		assert.Equal(t, "Invalid input", mapped.Error())
	})
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, apperror.IsRetryable(nil))
	assert.True(t, apperror.IsRetryable(errors.New("connection reset")))
	assert.True(t, apperror.IsRetryable(apperror.Upstream(errors.New("timeout"), "")))
	assert.True(t, apperror.IsRetryable(fmt.Errorf("reapply: %w", apperror.New(apperror.CodeServiceUnavailable, "down", http.StatusServiceUnavailable))))
	assert.False(t, apperror.IsRetryable(apperror.New(apperror.CodeInvalidState, "not approved", http.StatusConflict)))
	assert.False(t, apperror.IsRetryable(apperror.New(apperror.CodeNotFound, "gone", http.StatusNotFound)))
	assert.False(t, apperror.IsRetryable(apperror.ErrInternal))
}
