// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phamduc/yonde/internal/core/chapter"
	"github.com/phamduc/yonde/internal/core/manga"
	"github.com/phamduc/yonde/internal/platform/config"
	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/internal/platform/middleware"
	"github.com/phamduc/yonde/internal/social/comment"
	"github.com/phamduc/yonde/internal/tool/scraper"
	"github.com/phamduc/yonde/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and profile lookups.
	Auth *auth.Handler

	// Manga handles the catalog surface.
	Manga *manga.Handler

	// Chapter handles chapter uploads and the reader endpoints. It
	// shares the /api/manga router with Manga because chapters are
	// addressed through their parent.
	Chapter *chapter.Handler

	// Comment handles the discussion threads under manga.
	Comment *comment.Handler

	// Scraper handles the one-off image collection tool.
	Scraper *scraper.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Static Assets
	// Uploaded images are served straight from the image directory.
	fileServer := http.StripPrefix(constants.PublicImagePrefix, http.FileServer(http.Dir(cfg.ImagePath)))
	r.Get(constants.PublicImagePrefix+"*", fileServer.ServeHTTP)

	// # Application API
	// The client predates versioned prefixes; routes live under /api.
	r.Route("/api", func(api chi.Router) {
		api.Route("/manga", func(mangaRouter chi.Router) {
			h.Manga.RegisterRoutes(mangaRouter)
			h.Chapter.RegisterRoutes(mangaRouter)
		})
		api.Mount("/comment", h.Comment.Routes())
		api.Mount("/tool", h.Scraper.Routes())

		// Auth routes are historical top-level paths (/api/register,
		// /api/login); mount the catch-all last.
		api.Mount("/", h.Auth.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
