package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/datavault/datavault-go/internal/config"
	"github.com/datavault/datavault-go/internal/handler"
	"github.com/datavault/datavault-go/internal/middleware"
	"github.com/datavault/datavault-go/internal/repository"
	"github.com/datavault/datavault-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	itemService := service.NewItemService(itemRepo, userRepo)
	blockchainService := service.NewBlockchainService(itemRepo)

	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	blockchainHandler := handler.NewBlockchainHandler(blockchainService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/auth/user", authHandler.HandleMe)

		r.Get("/api/data", itemHandler.HandleList)
		r.Post("/api/data", itemHandler.HandleCreate)
		r.Get("/api/data/{id}", itemHandler.HandleGet)
		r.Put("/api/data/{id}", itemHandler.HandleUpdate)
		r.Delete("/api/data/{id}", itemHandler.HandleDelete)
		r.Post("/api/data/{id}/share", itemHandler.HandleShare)
		r.Delete("/api/data/{id}/share/{userID}", itemHandler.HandleRevoke)

		r.Post("/api/blockchain/verify", blockchainHandler.HandleVerify)
		r.Get("/api/blockchain/status/{id}", blockchainHandler.HandleStatus)
		r.Post("/api/blockchain/validate", blockchainHandler.HandleValidate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
