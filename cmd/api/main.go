// Package main runs the pdf-stamp HTTP API.
//
//	@title			pdf-stamp API
//	@version		1.0
//	@description	Merges remote PDFs, stamps signature details on them, and adds text to single documents.
//	@host			localhost:3001
//	@BasePath		/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pdf-stamp/internal/config"
	"pdf-stamp/internal/fetch"
	"pdf-stamp/internal/logging"
	"pdf-stamp/internal/server"
)

func gracefulShutdown(apiServer *http.Server, logger *zap.Logger, done chan bool, cleanupFunc func()) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// The server has 5 seconds to finish the requests it is handling.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if cleanupFunc != nil {
		logger.Info("removing scratch workspaces")
		cleanupFunc()
	}

	logger.Info("server exiting")

	done <- true
}

func newFetcher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (fetch.Fetcher, error) {
	httpFetcher := fetch.NewHTTPFetcher(&fetch.Options{
		Timeout:     cfg.FetchTimeout,
		MaxBytes:    cfg.FetchMaxBytes,
		UserAgent:   fetch.DefaultUserAgent,
		InsecureTLS: cfg.FetchInsecureTLS,
	})
	router := fetch.NewRouter().Handle(httpFetcher, "http", "https")

	if cfg.S3Enabled() {
		s3Fetcher, err := fetch.NewS3FetcherFromEnv(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.FetchMaxBytes)
		if err != nil {
			return nil, err
		}
		router.Handle(s3Fetcher, "s3")
		logger.Info("s3 downloads enabled", zap.String("region", cfg.S3Region))
	}
	return router, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	fetcher, err := newFetcher(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up downloads", zap.Error(err))
	}

	srv, err := server.NewServer(cfg, fetcher, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	apiServer := srv.HTTPServer()

	logger.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("scratch_dir", cfg.ScratchDir),
		zap.String("locale", cfg.StampLocale))

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, logger, done, srv.Close)

	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Fatal("http server error", zap.Error(err))
	}

	<-done
	logger.Info("graceful shutdown complete")
}
