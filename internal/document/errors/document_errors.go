package documenterrors

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Document id must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Only PDF, JPEG and PNG files are accepted",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the 5 MiB upload limit",
		http.StatusBadRequest,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Document is not in a state that allows this action",
		http.StatusConflict,
	)

	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Review status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)

	ErrInvalidFinalStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Final status must be VERIFIED or REJECTED",
		http.StatusBadRequest,
	)

	ErrRemarksRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection remarks are required",
		http.StatusBadRequest,
	)

	ErrRemarksTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Final rejection remarks must be at least 5 characters",
		http.StatusBadRequest,
	)

	ErrGrantMismatch = apperror.New(
		apperror.CodeForbidden,
		"Upload authorization was issued to a different employee",
		http.StatusForbidden,
	)

	ErrNotDocumentOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own documents",
		http.StatusForbidden,
	)
)
