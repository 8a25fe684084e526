// Package handler adapts the tool registry to HTTP so a host runtime can
// list and call tools.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/billetweb-booking/internal/provider"
	"github.com/iliyamo/billetweb-booking/internal/service"
	"github.com/iliyamo/billetweb-booking/internal/tool"
)

// maxInputBytes bounds the JSON arguments a host may send.
const maxInputBytes = 64 << 10

// ToolHandler serves the tool routes.
type ToolHandler struct {
	Registry *tool.Registry
	Logger   *zap.Logger
}

func NewToolHandler(reg *tool.Registry, logger *zap.Logger) *ToolHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolHandler{Registry: reg, Logger: logger}
}

// ListTools returns every registered descriptor under "tools".
func (h *ToolHandler) ListTools(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tools": h.Registry.Descriptors()})
}

// CallTool runs the named tool with the request body as its arguments.  An
// empty body is treated as "{}".  A failed call never returns partial
// content.
func (h *ToolHandler) CallTool(c echo.Context) error {
	name := c.Param("name")
	inv, err := h.Registry.Lookup(name)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tool_not_found"})
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxInputBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_input"})
	}
	if len(body) > maxInputBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "input_too_large"})
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_input"})
	}

	res, err := inv.Invoke(c.Request().Context(), json.RawMessage(body))
	if err != nil {
		return h.callError(c, name, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ToolHandler) callError(c echo.Context, name string, err error) error {
	log := h.Logger.With(zap.String("tool", name), zap.Any("host_id", c.Get("host_id")), zap.Error(err))

	var upstream *provider.UpstreamError
	var malformed *service.MalformedRecordError
	switch {
	case errors.As(err, &upstream):
		log.Warn("tool call failed upstream")
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error":    "upstream_error",
			"resource": upstream.Resource,
			"status":   upstream.StatusCode,
		})
	case errors.As(err, &malformed):
		log.Warn("tool call got malformed upstream data")
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error":    "upstream_malformed",
			"resource": malformed.Resource,
			"field":    malformed.Field,
		})
	case errors.Is(err, tool.ErrToolNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tool_not_found"})
	default:
		log.Error("tool call failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
	}
}
