package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListTestResults lists agent test result summaries.
// GET /v1/test-results
func (h *Handler) ListTestResults(c echo.Context) error {
	ctx := c.Request().Context()

	results, err := h.service.ListTestResults(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"test_results": results,
	})
}

// GetTestResult returns one test result record verbatim.
// GET /v1/test-results/:id
func (h *Handler) GetTestResult(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	result, err := h.service.GetTestResult(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
