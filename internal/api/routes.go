// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/csv-escape/backend/internal/config"
	"github.com/csv-escape/backend/internal/models"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Config  *config.AppConfig
	Version string
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	CSV    CSVHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	version := deps.Version
	if version == "" {
		version = models.Version
	}
	return &Handlers{
		Health: NewHealthHandler(version),
		CSV:    NewCSVHandler(deps.Config.Engine),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// CSV escape routes
	csvGroup := e.Group("/csv/v0")
	csvGroup.POST("/escape", handlers.CSV.HandleEscape)
	csvGroup.POST("/escape/msgpack", handlers.CSV.HandleEscapeMsgpack)
}

// RequestID tags every response with an X-Request-ID header, generating a
// uuid when the client did not send one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
	e.Use(RequestID())
}
