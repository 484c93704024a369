// internal/models/response.go
package models

import "net/http"

type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func Unauthorized(message string) *APIError {
	return &APIError{Message: message, StatusCode: http.StatusUnauthorized}
}

func NotFound(message string) *APIError {
	return &APIError{Message: message, StatusCode: http.StatusNotFound}
}

func InvalidInput(message string) *APIError {
	return &APIError{Message: message, StatusCode: http.StatusBadRequest}
}

// Response is the envelope every data service call returns. Consumers check Success
// before reading Data.
type Response[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

func Fail[T any](err *APIError) Response[T] {
	return Response[T]{Success: false, Error: err}
}

// Status is the HTTP status matching the envelope.
func (r Response[T]) Status() int {
	if r.Success {
		return http.StatusOK
	}
	if r.Error != nil && r.Error.StatusCode != 0 {
		return r.Error.StatusCode
	}
	return http.StatusInternalServerError
}
