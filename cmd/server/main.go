package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/backend"
	"quiz-portal/internal/config"
	"quiz-portal/internal/quiz"
	"quiz-portal/pkg/latency"
	"quiz-portal/pkg/websocket"
)

func main() {
	cfg, err := config.Init("")
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer store.Close()
	kv := store.Store(cfg.Store.Namespace)

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(log, cfg.HTTP.AllowedOrigins)
	go wsHub.Run(ctx)

	// Initialize repositories
	authRepo, err := auth.NewRepository(bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("seed credentials", zap.Error(err))
	}
	quizRepo := quiz.NewRepository(kv, nil)

	// Initialize services
	lat := latency.New(cfg.Latency.Enabled)
	quizService := quiz.NewService(quizRepo, log, lat, wsHub)
	authService := auth.NewService(authRepo, kv, quizService, log, auth.Options{
		TokenTTL: cfg.Token.TTL,
		Latency:  lat,
	})

	// Initialize handlers
	authHandler := auth.NewHandler(authService, log)
	quizHandler := quiz.NewHandler(quizService, log)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      newRouter(authHandler, quizHandler, wsHub, cfg.HTTP.AllowedOrigins, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTP.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", zap.Error(err))
	}

	log.Info("server shutdown gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
