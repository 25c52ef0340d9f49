package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/termgate/termgate/internal/bridge"
	"github.com/termgate/termgate/internal/config"
	"github.com/termgate/termgate/internal/database"
	"github.com/termgate/termgate/internal/diagnose"
	"github.com/termgate/termgate/internal/handlers"
	"github.com/termgate/termgate/internal/logging"
	"github.com/termgate/termgate/internal/sshshell"
	"github.com/termgate/termgate/internal/target"
)

func main() {
	config.Load()
	logging.Init()

	if err := database.Init(); err != nil {
		log.Fatalf("Database init: %v", err)
	}
	defer database.Close()

	if config.Cfg.TargetsFile != "" {
		if err := target.LoadSeedFile(config.Cfg.TargetsFile); err != nil {
			log.Fatalf("Targets seed: %v", err)
		}
	}

	registry := bridge.NewRegistry()
	handlers.Registry = registry
	handlers.Resolver = target.Resolver{}
	handlers.Shell = sshshell.Client{}
	handlers.Diagnose = func(host string, port int) {
		ctx, cancel := context.WithTimeout(context.Background(), config.Cfg.DiagnoseDeadline)
		defer cancel()
		diagnose.Run(ctx, host, port)
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", handlers.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// Terminal WebSocket
	r.Get("/terminal/{clientId}", handlers.TerminalWS)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/targets", handlers.ListTargets)
		r.Post("/targets", handlers.CreateTarget)
		r.Delete("/targets/{clientId}", handlers.DeleteTarget)

		r.Get("/bridges", handlers.ListBridges)
		r.Delete("/bridges/{sessionId}", handlers.CloseBridge)

		r.Get("/logs", handlers.GetServerLogs)
	})

	srv := &http.Server{
		Addr:    config.Cfg.ListenAddr,
		Handler: r,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on %s", config.Cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-sigCtx.Done()
	log.Println("Shutting down...")

	registry.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
