package employeeerrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrEmployeeCodeTaken = apperror.New(
		apperror.CodeConflict,
		"An employee with this code already exists",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Employee id must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of EMPLOYEE, HR, ADMIN, SUPER_ADMIN",
		http.StatusBadRequest,
	)

	ErrCannotDeleteSuperAdmin = apperror.New(
		apperror.CodeForbidden,
		"Super admin accounts cannot be deleted",
		http.StatusForbidden,
	)
)
