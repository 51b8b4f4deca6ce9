package puncherrors

import (
	"net/http"

	"go-timeconsole/internal/shared/apperror"
)

var (
	ErrPunchNotFound = apperror.New(
		apperror.CodeNotFound,
		"punch not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to to",
		http.StatusBadRequest,
	)
)
