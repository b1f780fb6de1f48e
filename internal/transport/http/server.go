// Package http provides the HTTP server for the viewer.
package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ainnovators/viewer/internal/service"
	v1 "github.com/ainnovators/viewer/internal/transport/http/v1"
)

// NewServer creates and configures the echo server serving the viewer API.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e)

	return e
}
