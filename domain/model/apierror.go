package model

import (
	"errors"
	"net/http"
)

// ApiError carries the HTTP status an error should surface as.
type ApiError struct {
	Status  int
	Message string
	Err     error
}

func (e *ApiError) Error() string {
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func NewApiError(status int, message string, err ...error) *ApiError {
	apiErr := &ApiError{Status: status, Message: message}
	if len(err) > 0 {
		apiErr.Err = err[0]
	}
	return apiErr
}

func BadRequest(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *ApiError {
	return NewApiError(http.StatusForbidden, message)
}

func NotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	return NewApiError(http.StatusConflict, message)
}

func Internal(message string, err ...error) *ApiError {
	return NewApiError(http.StatusInternalServerError, message, err...)
}

// StatusOf maps any error to the HTTP status it should be reported with.
func StatusOf(err error) int {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
