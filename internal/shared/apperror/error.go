package apperror

import "fmt"

// AppError adalah error berkode yang membawa status HTTP-nya sendiri. Paket
// errors tiap domain mendeklarasikan sentinel bertipe ini, dan handler cukup
// memetakannya lewat ToHTTP.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error // penyebab asli, opsional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap mendukung errors.Is/As terhadap penyebab aslinya.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus err dengan kode dan status; nil tetap nil agar aman dipakai
// langsung pada nilai kembalian.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
