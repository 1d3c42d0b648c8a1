// main is the entry point of the hospital admin console.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env and env overrides)
//  2. Initialise the logger
//  3. Build the client for the remote hospital collection
//  4. Create the per-browser session registry and register all routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE CONSOLE:
//
//	go run ./cmd/hospital-admin --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/hospital-admin
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/hospital-admin/internal/config"
	"github.com/aanand-mishra/hospital-admin/internal/http/handlers/hospital"
	"github.com/aanand-mishra/hospital-admin/internal/session"
	"github.com/aanand-mishra/hospital-admin/internal/storage/hospitalapi"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Installed as the default so package-level slog calls in the handlers
	// and the remote client share the same output.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting hospital-admin",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Remote Collection ──────────────────────────────────────────────
	storage, err := hospitalapi.New(cfg)
	if err != nil {
		log.Error("failed to initialise remote collection client",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("remote collection configured",
		slog.String("base_url", cfg.Remote.BaseURL),
		slog.Duration("timeout", cfg.Remote.Timeout))

	// ── 4. Sessions and Routes ────────────────────────────────────────────
	registry := session.NewRegistry(storage, cfg.Session.TTL, log)
	router := hospital.NewRouter(registry, cfg.CORS.AllowedOrigins)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully",
		slog.Int("sessions", registry.Len()))
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
