package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"enrichly/internal/config"
	"enrichly/internal/logger"
	"enrichly/internal/rewrite"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes the rewrite pipeline over HTTP. Handlers stay thin: they
// decode requests, call the pipeline, and encode results.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	rewriter   *rewrite.Rewriter
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance
func New(rewriter *rewrite.Rewriter, cfg config.Server) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		rewriter: rewriter,
		config:   cfg,
		log:      logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
		}))
	}
}

// setupRoutes registers the API surface
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/articles/{articleID}/rewrite", s.handleRewriteArticle)
		r.Post("/rewrite/batch", s.handleRewriteBatch)
		r.Get("/candidates", s.handleCandidates)
	})
}

// Start begins serving HTTP requests until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
