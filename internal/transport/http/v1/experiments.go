package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListExperiments lists all experiments, newest first.
// GET /v1/experiments
func (h *Handler) ListExperiments(c echo.Context) error {
	ctx := c.Request().Context()

	experiments, err := h.service.ListExperiments(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"experiments": experiments,
	})
}

// GetExperiment returns one experiment with its normalized context or results
// bundle.
// GET /v1/experiments/:id
func (h *Handler) GetExperiment(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	detail, err := h.service.GetExperiment(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// GetStatistics returns an experiment's statistics document.
// GET /v1/experiments/:id/statistics
func (h *Handler) GetStatistics(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	stats, err := h.service.GetStatistics(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// GetDesignAsset serves a design image from an experiment's designs folder.
// GET /v1/experiments/:id/designs/:file
func (h *Handler) GetDesignAsset(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	file := c.Param("file")

	data, contentType, err := h.service.GetDesignAsset(ctx, id, file)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Blob(http.StatusOK, contentType, data)
}
