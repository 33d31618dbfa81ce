package main

import (
	"context"
	"errors"
	"log/slog"
	"main/internal/backend"
	"main/internal/cascade"
	"main/internal/config"
	routes "main/internal/delivery/http"
	adminHandler "main/internal/delivery/http/admin_handler"
	authHandler "main/internal/delivery/http/auth_handler"
	catalogHandler "main/internal/delivery/http/catalog_handler"
	"main/internal/metrics"
	"main/internal/session"
	errHandler "main/pkg/error_handler"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	config := config.LoadConfig()
	logger := setupLogger(config.Env)
	logger.Info("Application started", "env", config.Env)

	// Redis holds sessions and rate-limit counters
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisConfig.Addr,
		Password: config.RedisConfig.Password,
		DB:       config.RedisConfig.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return
	}
	logger.Info("Connected to redis successfully")

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	// Outbound client for the commerce backend
	api := backend.NewClient(config.BackendConfig.BaseURL, config.BackendConfig.Timeout, m)
	logger.Info("Backend client configured", "base_url", config.BackendConfig.BaseURL)

	sessions := session.NewManager(config.SessionConfig, rdb, logger)
	orchestrator := cascade.NewOrchestrator(api, logger)

	// Initialize Echo
	e := echo.New()
	e.HTTPErrorHandler = errHandler.HandleError

	// Initialize handlers and map routes
	auth := authHandler.NewAuthHandler(api, sessions, m)
	admin := adminHandler.NewAdminHandler(api, orchestrator)
	catalog := catalogHandler.NewCatalogHandler(api)
	routes.MapRoutes(e, auth, admin, catalog, sessions, logger, config.RateLimiterConfig, m, registry, rdb)

	serverParams := &http.Server{
		Addr:         net.JoinHostPort(config.Server.Host, strconv.Itoa(config.Server.Port)),
		Handler:      e,
		ReadTimeout:  config.Server.Timeout,
		WriteTimeout: config.Server.Timeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Run the server and handle graceful shutdown. The application listens for
	// interrupt signals (like Ctrl+C) to initiate a graceful shutdown process,
	// allowing ongoing requests to complete before the server is stopped.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server on port", slog.String("addr", serverParams.Addr))
		if err := serverParams.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server...")

		shutDownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := serverParams.Shutdown(shutDownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	})

	// Wait for all goroutines to finish and check for errors
	if err := g.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("Application stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// setupLogger configures the logger based on the environment (production, development, local).
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case "production":
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "development", "local":
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return log
}
