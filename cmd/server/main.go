package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/middleware"
	"devconnect/internal/observability"
	"devconnect/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "devconnect",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})
	if err != nil {
		middleware.Logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}

	cache.InitRedis(cfg.RedisURL)

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, db)
	srv.SetupMiddleware()
	srv.SetupRoutes()

	go func() {
		middleware.Logger.Info("server starting", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			middleware.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	middleware.Logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		middleware.Logger.Error("shutdown error", "error", err)
	}
	if shutdownTracing != nil {
		_ = shutdownTracing(context.Background())
	}
}
