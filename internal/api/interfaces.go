// interfaces.go - Handler contracts consumed by route registration
package api

import "github.com/labstack/echo/v4"

// HealthHandler serves liveness checks.
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// CSVHandler serves the escape/analyze/sanitize endpoint in its JSON and
// msgpack variants.
type CSVHandler interface {
	HandleEscape(c echo.Context) error
	HandleEscapeMsgpack(c echo.Context) error
}
