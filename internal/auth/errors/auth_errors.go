package autherrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Refresh token is invalid",
		http.StatusUnauthorized,
	)

	ErrExpiredRefreshToken = apperror.New(
		apperror.CodeExpiredToken,
		"Refresh token has expired",
		http.StatusUnauthorized,
	)

	ErrInvalidResetToken = apperror.New(
		apperror.CodeInvalidInput,
		"Reset token is invalid or has expired",
		http.StatusBadRequest,
	)
)
