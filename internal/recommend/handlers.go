package recommend

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for recommendation operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new recommendation handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers recommendation routes on an Echo group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.POST("/recommendations", h.Start)
	g.POST("/recommendations/more", h.More)
	g.GET("/suggest", h.Suggest)
}

type startRequest struct {
	Input string `json:"input"`
}

type moreRequest struct {
	SessionID string `json:"sessionId"`
}

// Start runs a fresh recommendation search.
// POST /api/v1/recommendations
func (h *Handlers) Start(c echo.Context) error {
	var req startRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	envelope, err := h.service.Start(c.Request().Context(), req.Input)
	if err != nil {
		return mapPipelineError(err)
	}

	return c.JSON(http.StatusOK, envelope)
}

// More continues an existing recommendation session.
// POST /api/v1/recommendations/more
func (h *Handlers) More(c echo.Context) error {
	var req moreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sessionId is required")
	}

	envelope, err := h.service.More(c.Request().Context(), req.SessionID)
	if err != nil {
		return mapPipelineError(err)
	}

	return c.JSON(http.StatusOK, envelope)
}

// Suggest returns autocomplete suggestions for a partial query.
// GET /api/v1/suggest?q=
func (h *Handlers) Suggest(c echo.Context) error {
	items := h.service.Suggest(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, items)
}

// mapPipelineError converts pipeline errors to HTTP responses with short
// human-readable messages. Internal transport details are never exposed
// beyond the wrapped cause text of a generation failure.
func mapPipelineError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return echo.NewHTTPError(http.StatusBadRequest, ErrEmptyInput.Error())
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrSessionNotFound.Error())
	case errors.Is(err, ErrNoRecommendations):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrNoRecommendations.Error())
	case errors.Is(err, ErrNoMatchesInCatalog):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrNoMatchesInCatalog.Error())
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return echo.NewHTTPError(http.StatusBadGateway, genErr.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "an unexpected error occurred while getting recommendations")
}
