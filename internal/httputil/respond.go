// Package httputil writes response envelopes and carries shared HTTP middleware.
package httputil

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"quiz-portal/internal/models"
)

const msgInternal = "Internal server error"

// Respond writes resp, or a 500 envelope when err is set.
func Respond[T any](w http.ResponseWriter, r *http.Request, log *zap.Logger, resp models.Response[T], err error) {
	if err != nil {
		log.Warn("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		Write(w, models.Fail[struct{}](&models.APIError{Message: msgInternal, StatusCode: http.StatusInternalServerError}))
		return
	}
	Write(w, resp)
}

func Write[T any](w http.ResponseWriter, resp models.Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status())

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(resp)
}

// Reject writes a failed envelope built from err.
func Reject(w http.ResponseWriter, err *models.APIError) {
	Write(w, models.Fail[struct{}](err))
}

// DecodeJSON reads the request body into v, answering 400 itself on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Reject(w, models.InvalidInput("Invalid request"))
		return false
	}
	return true
}
