package errors

import "net/http"

// AppError is an error carrying the HTTP status it should be reported with.
// Handlers push one through gin's error list and the error middleware turns
// it into the JSON response.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg)
}
