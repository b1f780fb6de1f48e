// Package v1 provides HTTP handlers for the viewer API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ainnovators/viewer/internal/domain"
	"github.com/ainnovators/viewer/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the viewer routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/experiments", h.ListExperiments)
	e.GET("/v1/experiments/:id", h.GetExperiment)
	e.GET("/v1/experiments/:id/statistics", h.GetStatistics)
	e.GET("/v1/experiments/:id/designs/:file", h.GetDesignAsset)

	e.GET("/v1/test-results", h.ListTestResults)
	e.GET("/v1/test-results/:id", h.GetTestResult)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorResponse maps the domain error taxonomy to HTTP status codes.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
