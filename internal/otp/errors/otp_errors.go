package otperrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrOTPNotIssued = apperror.New(
		apperror.CodeInvalidState,
		"No verification code has been issued for this account",
		http.StatusBadRequest,
	)

	ErrOTPMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Verification code does not match",
		http.StatusBadRequest,
	)

	ErrOTPExpired = apperror.New(
		apperror.CodeExpiredToken,
		"Verification code has expired, request a new one",
		http.StatusBadRequest,
	)

	ErrOTPAttemptsExceeded = apperror.New(
		apperror.CodeForbidden,
		"Too many failed attempts, request a new verification code",
		http.StatusForbidden,
	)

	ErrInvalidUploadGrant = apperror.New(
		apperror.CodeUnauthorized,
		"Upload authorization is missing or invalid, verify a code first",
		http.StatusUnauthorized,
	)
)
