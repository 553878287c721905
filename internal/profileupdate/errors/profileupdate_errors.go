package profileupdateerrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile update request not found",
		http.StatusNotFound,
	)

	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Request id must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrNoValidFields = apperror.New(
		apperror.CodeInvalidInput,
		"No updatable fields were provided",
		http.StatusBadRequest,
	)

	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"This request has already been decided",
		http.StatusConflict,
	)

	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Decision must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
