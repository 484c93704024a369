// internal/auth/handler.go
package auth

import (
	"net/http"

	"go.uber.org/zap"

	"quiz-portal/internal/httputil"
	"quiz-portal/internal/models"
)

// Handler serves the auth routes as JSON envelopes.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CurrentAccount(r.Context())
	httputil.Respond(w, r, h.log, resp, err)
}
