package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hassaancode/CineSage/internal/bookmarks"
	"github.com/hassaancode/CineSage/internal/catalog"
	"github.com/hassaancode/CineSage/internal/recommend"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())

	// Request body size limit (recommendation payloads are small)
	s.echo.Use(middleware.BodyLimit("1M"))
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api/v1")

	api.GET("/health", s.health)

	recommendHandlers := recommend.NewHandlers(s.recommendService)
	recommendHandlers.RegisterRoutes(api)

	catalogHandlers := catalog.NewHandlers(s.catalogClient)
	catalogHandlers.RegisterRoutes(api)

	bookmarkHandlers := bookmarks.NewHandlers(s.bookmarkService)
	bookmarkHandlers.RegisterRoutes(api.Group("/bookmarks"))
}

// health reports service status and external provider configuration.
// GET /api/v1/health
func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"providers": map[string]bool{
			"tmdb":  s.catalogClient.IsConfigured(),
			"genai": s.genaiClient.IsConfigured(),
		},
	})
}
