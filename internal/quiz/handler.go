// internal/quiz/handler.go
package quiz

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"quiz-portal/internal/httputil"
	"quiz-portal/internal/models"
)

// Handler serves the quiz routes as JSON envelopes.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetQuizzes(r.Context())
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) GetMyQuizzes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetMyQuizzes(r.Context())
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetQuizByID(r.Context(), id)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var draft models.QuizDraft
	if !httputil.DecodeJSON(w, r, &draft) {
		return
	}
	resp, err := h.service.CreateQuiz(r.Context(), draft)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch models.QuizPatch
	if !httputil.DecodeJSON(w, r, &patch) {
		return
	}
	resp, err := h.service.UpdateQuiz(r.Context(), id, patch)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.service.DeleteQuiz(r.Context(), id)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) GetStudentResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetStudentResults(r.Context(), id)
	httputil.Respond(w, r, h.log, resp, err)
}

func (h *Handler) GetAIFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetAIFeedback(r.Context(), id)
	httputil.Respond(w, r, h.log, resp, err)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		httputil.Reject(w, models.InvalidInput("Invalid "+name))
		return 0, false
	}
	return id, true
}
