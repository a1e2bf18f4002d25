// Package server wires the pdf-stamp HTTP server: configuration, scratch
// workspaces, the document pipeline and the routes.
//
// Usage:
//
//	srv, err := server.NewServer(cfg, fetcher, logger)
//	httpServer := srv.HTTPServer()
//	httpServer.ListenAndServe()
//	srv.Close()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"pdf-stamp/internal/config"
	"pdf-stamp/internal/fetch"
	"pdf-stamp/internal/merge"
	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/scratch"
	"pdf-stamp/internal/stamp"
	"pdf-stamp/internal/watermark"

	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	Scratch  *scratch.Manager
	Pipeline *merge.Pipeline

	stop     chan struct{}
	stopOnce sync.Once
}

// NewServer builds the pipeline for cfg and starts the workspace reaper.
func NewServer(cfg *config.Config, fetcher fetch.Fetcher, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sm, err := scratch.NewManager(cfg.ScratchDir)
	if err != nil {
		return nil, err
	}

	engine := merge.NewEngine(
		watermark.DefaultPolicy(watermark.LabelsFor(cfg.StampLocale)),
		stamp.NewRenderer(),
		pdf.NewFontLoader(cfg.FontPath, logger),
		logger,
	)

	srv := &Server{
		config:   cfg,
		logger:   logger,
		Scratch:  sm,
		Pipeline: merge.NewPipeline(fetcher, engine, sm, logger),
		stop:     make(chan struct{}),
	}
	go srv.reap(cfg.ScratchMaxAge)

	return srv, nil
}

// HTTPServer returns an http.Server serving the routes on the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
}

// Close stops the reaper and removes every workspace.
func (s *Server) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.Scratch.Cleanup()
}

// reap sweeps scratch directories no request owns once they are older
// than maxAge, checking at the same interval.
func (s *Server) reap(maxAge time.Duration) {
	ticker := time.NewTicker(maxAge)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Scratch.Reap(maxAge); n > 0 {
				s.logger.Info("reaped orphaned scratch directories", zap.Int("count", n))
			}
		}
	}
}
