package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"TAMCP/internal/domain/models"
	"TAMCP/internal/usecase"
	xhttp "TAMCP/pkg/http"
	xlogger "TAMCP/pkg/logger"
)

// ToolsEchoHandler exposes the tool registry over REST and MCP.
type ToolsEchoHandler struct {
	logger   *xlogger.Logger
	registry *usecase.ToolRegistry
	mcp      *MCPEchoHandler
}

func NewToolsEchoHandler(logger *xlogger.Logger, registry *usecase.ToolRegistry, version string) *ToolsEchoHandler {
	return &ToolsEchoHandler{
		logger:   logger,
		registry: registry,
		mcp:      NewMCPEchoHandler(logger, registry, version),
	}
}

func (h *ToolsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/tools", h.ListTools)
	e.POST("/call", h.CallTool)
	e.POST("/mcp", h.mcp.Handle)
}

func (h *ToolsEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *ToolsEchoHandler) ListTools(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{"tools": h.registry.List()})
}

func (h *ToolsEchoHandler) CallTool(c echo.Context) error {
	req := &models.CallRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.registry.Call(c.Request().Context(), req.Name, req.Arguments)
	if err != nil {
		return h.toolError(c, req.Name, err)
	}
	return xhttp.ResultResponse(c, res)
}

func (h *ToolsEchoHandler) toolError(c echo.Context, name string, err error) error {
	var inv *models.InvalidInputError
	switch {
	case errors.As(err, &inv):
		return xhttp.ErrorResponse(c, http.StatusBadRequest, inv.Message)
	case errors.Is(err, usecase.ErrUnknownTool):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown tool: %s", name))
	default:
		h.logger.Error("tool call error", xlogger.String("tool", name), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
}
