package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/billetweb-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterTools mounts the host-facing tool routes under /v1/tools.  The
// given middleware (host auth, rate limiting) runs in order before every
// tool route.
func RegisterTools(e *echo.Echo, h *handler.ToolHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/tools", mw...)
	g.GET("", h.ListTools)
	g.POST("/:name/call", h.CallTool)
}
