package attendanceerrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"Timestamps must be RFC 3339",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of PRESENT, ABSENT, LEAVE, REMOTE",
		http.StatusBadRequest,
	)

	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"Check-out cannot be earlier than check-in",
		http.StatusBadRequest,
	)

	ErrNotOwnHistory = apperror.New(
		apperror.CodeForbidden,
		"You may only view your own attendance",
		http.StatusForbidden,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be in YYYY-MM format",
		http.StatusBadRequest,
	)
)
