package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hassaancode/CineSage/internal/media"
)

// Handlers provides HTTP handlers for catalog detail operations.
type Handlers struct {
	client *Client
}

// NewHandlers creates a new catalog handlers instance.
func NewHandlers(client *Client) *Handlers {
	return &Handlers{client: client}
}

// RegisterRoutes registers catalog routes on an Echo group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/genres", h.Genres)
	g.GET("/media/:type/:id/videos", h.Videos)
	g.GET("/media/:type/:id/trailer", h.Trailer)
	g.GET("/media/:type/:id/credits", h.Credits)
	g.GET("/media/:type/:id/reviews", h.Reviews)
}

// Genres returns the genre id to name mapping.
// GET /api/v1/genres
func (h *Handlers) Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, h.client.GenreMap(c.Request().Context()))
}

// Videos returns the videos attached to a catalog item.
// GET /api/v1/media/:type/:id/videos
func (h *Handlers) Videos(c echo.Context) error {
	mediaType, id, err := mediaParams(c)
	if err != nil {
		return err
	}

	videos := h.client.Videos(c.Request().Context(), id, mediaType)
	if videos == nil {
		videos = []media.Video{}
	}
	return c.JSON(http.StatusOK, videos)
}

// Trailer returns the best trailer for a catalog item, or 204 when none
// qualifies.
// GET /api/v1/media/:type/:id/trailer
func (h *Handlers) Trailer(c echo.Context) error {
	mediaType, id, err := mediaParams(c)
	if err != nil {
		return err
	}

	trailer := media.PickTrailer(h.client.Videos(c.Request().Context(), id, mediaType))
	if trailer == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, trailer)
}

// Credits returns the cast and crew for a catalog item.
// GET /api/v1/media/:type/:id/credits
func (h *Handlers) Credits(c echo.Context) error {
	mediaType, id, err := mediaParams(c)
	if err != nil {
		return err
	}

	credits := h.client.Credits(c.Request().Context(), id, mediaType)
	if credits == nil {
		credits = &Credits{Cast: []Person{}}
	}
	return c.JSON(http.StatusOK, credits)
}

// Reviews returns user reviews for a catalog item.
// GET /api/v1/media/:type/:id/reviews
func (h *Handlers) Reviews(c echo.Context) error {
	mediaType, id, err := mediaParams(c)
	if err != nil {
		return err
	}

	reviews := h.client.Reviews(c.Request().Context(), id, mediaType)
	if reviews == nil {
		reviews = []Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func mediaParams(c echo.Context) (media.Type, int, error) {
	mediaType, err := media.ParseType(c.Param("type"))
	if err != nil {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "invalid media type")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "invalid media id")
	}
	return mediaType, id, nil
}
