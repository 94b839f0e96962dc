// Command server runs the user backend HTTP API.
//
// Startup order: .env → config → logging → tracing → store (with demo seed)
// → router → http.Server with configured timeouts → graceful shutdown on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-user-backend/internal/config"
	"github.com/tbourn/go-user-backend/internal/domain"
	httpapi "github.com/tbourn/go-user-backend/internal/http"
	"github.com/tbourn/go-user-backend/internal/observability"
	"github.com/tbourn/go-user-backend/internal/repo"
	"github.com/tbourn/go-user-backend/internal/sysutil"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 10 * time.Second

func main() {
	// Best effort: a missing .env is fine outside development.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(sysutil.PrettyWriter(os.Stderr))
	}

	ctx := context.Background()
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, cfg.APIVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()

	store := repo.NewUserStore()
	store.Seed(
		domain.User{Name: "John Doe", Email: "john@example.com"},
		domain.User{Name: "Jane Smith", Email: "jane@example.com"},
	)

	httpapi.RegisterRoutes(r, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("version", cfg.APIVersion).
			Str("base_path", cfg.APIBasePath).
			Str("db_url", cfg.DB.URL).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
	log.Info().Msg("server stopped")
}
