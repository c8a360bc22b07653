// Package api wires the HTTP surface of the recommendation service.
package api

import (
	"context"
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hassaancode/CineSage/internal/bookmarks"
	"github.com/hassaancode/CineSage/internal/catalog"
	"github.com/hassaancode/CineSage/internal/config"
	"github.com/hassaancode/CineSage/internal/genai"
	"github.com/hassaancode/CineSage/internal/recommend"
)

// Server handles HTTP requests for the CineSage API.
type Server struct {
	echo   *echo.Echo
	db     *sql.DB
	logger zerolog.Logger
	cfg    *config.Config

	// Services
	catalogClient    *catalog.Client
	genaiClient      *genai.Client
	recommendService *recommend.Service
	bookmarkService  *bookmarks.Service
}

// NewServer creates a new API server instance.
func NewServer(db *sql.DB, cfg *config.Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		db:     db,
		logger: logger,
		cfg:    cfg,
	}

	s.catalogClient = catalog.NewClient(cfg.TMDB, logger)
	s.genaiClient = genai.NewClient(cfg.GenAI, logger)
	s.recommendService = recommend.NewService(s.genaiClient, s.genaiClient, s.catalogClient, logger)
	s.bookmarkService = bookmarks.NewService(db, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Catalog returns the catalog client.
func (s *Server) Catalog() *catalog.Client {
	return s.catalogClient
}

// Recommendations returns the recommendation service.
func (s *Server) Recommendations() *recommend.Service {
	return s.recommendService
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
