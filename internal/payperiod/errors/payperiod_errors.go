package payperioderrors

import (
	"net/http"

	"go-timeconsole/internal/shared/apperror"
)

var (
	ErrPayPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay period not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriodDates = apperror.New(
		apperror.CodeInvalidState,
		"pay period has a missing or malformed start or end date",
		http.StatusUnprocessableEntity,
	)
	ErrNoActiveTemplates = apperror.New(
		apperror.CodeInvalidState,
		"department has no active pay period templates",
		http.StatusUnprocessableEntity,
	)
)
