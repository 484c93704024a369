package main

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/httputil"
	"quiz-portal/internal/quiz"
	"quiz-portal/pkg/websocket"
)

func newRouter(authHandler *auth.Handler, quizHandler *quiz.Handler, wsHub *websocket.Hub, allowedOrigins []string, log *zap.Logger) http.Handler {
	router := mux.NewRouter()

	// Auth routes - no token required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.TokenMiddleware(time.Now))

	apiRouter.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes", quizHandler.GetQuizzes).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/mine", quizHandler.GetMyQuizzes).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes", quizHandler.CreateQuiz).Methods("POST")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.GetQuiz).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.UpdateQuiz).Methods("PUT")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.DeleteQuiz).Methods("DELETE")
	apiRouter.HandleFunc("/students/{id}/results", quizHandler.GetStudentResults).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/answers/{id}/feedback", quizHandler.GetAIFeedback).Methods("GET", "OPTIONS")

	router.HandleFunc("/ws", wsHub.HandleWebSocket)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", httputil.HeaderRequestID},
		ExposedHeaders:   []string{"Content-Length", httputil.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(log)),
		handlers.PrintRecoveryStack(true),
	)

	return corsMiddleware.Handler(httputil.RequestLogger(log)(recovery(router)))
}
