// Package web serves the cmt JSON API.
package web

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/logging"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
)

// defaultMaxBody bounds submitted documents.
const defaultMaxBody = 10 << 20

// Server is the API HTTP server.
type Server struct {
	repo    *analysis.Repository
	svc     *analysis.Service
	router  chi.Router
	maxBody int64
}

// NewServer creates an API server over db. Submitted documents are scanned
// with opts and keep the topWords most frequent words.
func NewServer(db *sql.DB, opts scanner.Options, topWords int) *Server {
	repo := analysis.NewRepository(db)
	s := &Server{
		repo:    repo,
		svc:     analysis.NewService(repo, opts, topWords),
		router:  chi.NewRouter(),
		maxBody: defaultMaxBody,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(logging.RequestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/analyses", func(r chi.Router) {
		r.Get("/", s.apiListAnalyses)
		r.Post("/", s.apiCreateAnalysis)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.apiGetAnalysis)
			r.Delete("/", s.apiDeleteAnalysis)
			r.Get("/words", s.apiListWords)
		})
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("starting API server", "addr", addr)
	return srv.ListenAndServe()
}
