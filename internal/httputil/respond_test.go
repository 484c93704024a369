package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quiz-portal/internal/models"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name       string
		resp       models.Response[string]
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "ok", resp: models.OK("hi"), wantStatus: http.StatusOK},
		{name: "not found", resp: models.Fail[string](models.NotFound("Quiz not found")), wantStatus: http.StatusNotFound, wantMsg: "Quiz not found"},
		{name: "infrastructure error", err: errors.New("redis down"), wantStatus: http.StatusInternalServerError, wantMsg: msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Respond(rec, httptest.NewRequest(http.MethodGet, "/", nil), zap.NewNop(), tt.resp, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body models.Response[string]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantMsg == "" {
				assert.True(t, body.Success)
				assert.Equal(t, "hi", *body.Data)
				return
			}
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }

	rec := httptest.NewRecorder()
	assert.True(t, DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"a"}`)), &v))
	assert.Equal(t, "a", v.Name)

	rec = httptest.NewRecorder()
	assert.False(t, DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)), &v))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var seen string
	h := RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "fixed")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed", seen)
}
