package server

import (
	"net"
	"net/http"

	_ "pdf-stamp/docs"
	"pdf-stamp/internal/handlers"
	"pdf-stamp/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	h := handlers.NewAPIHandler(s.Pipeline, s.logger)
	r.Get("/health", h.Health)
	r.Post("/process-pdfs", h.ProcessPDFs)
	r.Post("/add-text-to-pdf", h.AddTextToPDF)

	return r
}
