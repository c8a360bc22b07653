package bookmarks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hassaancode/CineSage/internal/media"
)

// Handlers provides HTTP handlers for bookmark operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new bookmarks handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers bookmark routes on an Echo group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.DELETE("/:type/:id", h.Delete)
}

// List returns all bookmarks.
// GET /api/v1/bookmarks
func (h *Handlers) List(c echo.Context) error {
	bookmarks, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// Add saves a media item as a bookmark.
// POST /api/v1/bookmarks
func (h *Handlers) Add(c echo.Context) error {
	var item media.Item
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if item.ID == 0 || !item.MediaType.IsValid() || item.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id, mediaType and title are required")
	}

	bookmark, err := h.service.Add(c.Request().Context(), item)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// Delete removes a bookmark by identity key.
// DELETE /api/v1/bookmarks/:type/:id
func (h *Handlers) Delete(c echo.Context) error {
	mediaType, err := media.ParseType(c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid media type")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid media id")
	}

	if err := h.service.Delete(c.Request().Context(), media.Key{ID: id, MediaType: mediaType}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
