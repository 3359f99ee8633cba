package studenterrors

import (
	"net/http"

	"go-silpa/internal/shared/apperror"
)

var (
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Student not found",
		http.StatusNotFound,
	)
	ErrStudentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Student with the same email already exists",
		http.StatusConflict,
	)
	ErrNIMAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Student number (NIM) already registered",
		http.StatusConflict,
	)
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid student ID",
		http.StatusBadRequest,
	)
)
