package main

import (
	"DonaTalkAPI/docs"
	"DonaTalkAPI/internal/adapter"
	"DonaTalkAPI/internal/bootstrap"
	"DonaTalkAPI/internal/config"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()
	if appURL, err := url.Parse(cfg.AppURL); err == nil && appURL.Host != "" {
		docs.SwaggerInfo.Host = appURL.Host
	}

	mongoClient, db := config.InitMongo(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			slog.Error("Error closing database connection", "error", err)
		}
	}()

	var redisAdapter *adapter.RedisAdapter
	if cfg.RedisEnabled {
		var err error
		redisAdapter, err = adapter.NewRedisAdapter(cfg)
		if err != nil {
			slog.Error("Redis unavailable, continuing without cross-instance delivery", "error", err)
			redisAdapter = nil
		} else {
			defer redisAdapter.Close()
		}
	}

	s3Client := config.NewS3Client(cfg)
	validate := config.NewValidator()
	chiMux := config.NewChi(cfg)

	app := bootstrap.Init(cfg, db, redisAdapter, validate, s3Client, chiMux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           chiMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting DonaTalkAPI", "port", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	app.Close()
	slog.Info("Server stopped")
}
