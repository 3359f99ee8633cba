package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError adalah bentuk siap-render dari sebuah error untuk handler.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP memetakan error apa pun ke HTTPError. *AppError diterjemahkan apa
// adanya; error lain dianggap kegagalan internal dan pesannya tidak dibocorkan
// ke klien.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}

// RequiredField membentuk error validasi "wajib diisi" untuk satu field.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField membentuk error validasi generik untuk satu field.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}
