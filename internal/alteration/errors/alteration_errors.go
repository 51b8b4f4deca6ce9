package alterationerrors

import (
	"net/http"

	"go-timeconsole/internal/shared/apperror"
)

var (
	ErrAlterationNotFound = apperror.New(
		apperror.CodeNotFound,
		"punch alteration not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"not pending",
		http.StatusConflict,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"not approved",
		http.StatusConflict,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeValidationError,
		"outcome must be approve or reject",
		http.StatusBadRequest,
	)
	ErrEmptyBulkRequest = apperror.New(
		apperror.CodeValidationError,
		"ids must contain at least one alteration id",
		http.StatusBadRequest,
	)
	ErrNotPermitted = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to review punch alterations",
		http.StatusForbidden,
	)
	ErrDecisionInProgress = apperror.New(
		apperror.CodeConflict,
		"another decision for this alteration is in progress",
		http.StatusConflict,
	)
)
