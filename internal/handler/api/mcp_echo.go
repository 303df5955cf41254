package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"TAMCP/internal/domain/models"
	"TAMCP/internal/usecase"
	xlogger "TAMCP/pkg/logger"
)

const (
	jsonRPCVersion = "2.0"

	serverName         = "talib-mcp-server"
	serverInstructions = "Stateless TA-Lib indicators. Provide prices oldest→newest."
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// supportedProtocolVersions is ordered oldest to newest; the last one is offered by default.
var supportedProtocolVersions = []string{"2024-11-05", "2025-03-26", "2025-06-18"}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type initializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolCallResult struct {
	Content           []textContent          `json:"content"`
	StructuredContent map[string]interface{} `json:"structuredContent,omitempty"`
	IsError           bool                   `json:"isError"`
}

// MCPEchoHandler serves the Model Context Protocol over streamable HTTP.
// Only single JSON responses are produced; there is no SSE stream.
type MCPEchoHandler struct {
	logger   *xlogger.Logger
	registry *usecase.ToolRegistry
	version  string
}

func NewMCPEchoHandler(logger *xlogger.Logger, registry *usecase.ToolRegistry, version string) *MCPEchoHandler {
	return &MCPEchoHandler{logger: logger, registry: registry, version: version}
}

func (h *MCPEchoHandler) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
			return h.fail(c, nil, codeInvalidRequest, "batch requests are not supported")
		}
		return h.fail(c, nil, codeParseError, "Parse error")
	}
	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		return h.fail(c, req.ID, codeInvalidRequest, "Invalid Request")
	}

	// notifications carry no id and get no response body
	if len(req.ID) == 0 || strings.HasPrefix(req.Method, "notifications/") {
		return c.NoContent(http.StatusAccepted)
	}

	switch req.Method {
	case "initialize":
		return h.reply(c, req.ID, h.initialize(req.Params))
	case "ping":
		return h.reply(c, req.ID, struct{}{})
	case "tools/list":
		return h.reply(c, req.ID, map[string]interface{}{"tools": h.registry.List()})
	case "tools/call":
		return h.callTool(c, req)
	default:
		return h.fail(c, req.ID, codeMethodNotFound, "Method not found: "+req.Method)
	}
}

func (h *MCPEchoHandler) initialize(raw json.RawMessage) map[string]interface{} {
	version := supportedProtocolVersions[len(supportedProtocolVersions)-1]
	var p initializeParams
	if len(raw) > 0 && json.Unmarshal(raw, &p) == nil {
		for _, v := range supportedProtocolVersions {
			if v == p.ProtocolVersion {
				version = v
			}
		}
	}
	return map[string]interface{}{
		"protocolVersion": version,
		"capabilities": map[string]interface{}{
			"tools": map[string]bool{"listChanged": false},
		},
		"serverInfo": map[string]string{
			"name":    serverName,
			"version": h.version,
		},
		"instructions": serverInstructions,
	}
}

func (h *MCPEchoHandler) callTool(c echo.Context, req rpcRequest) error {
	var p toolCallParams
	if len(req.Params) == 0 || json.Unmarshal(req.Params, &p) != nil || p.Name == "" {
		return h.fail(c, req.ID, codeInvalidParams, "Invalid params: name is required")
	}

	res, err := h.registry.Call(c.Request().Context(), p.Name, p.Arguments)
	if err != nil {
		var inv *models.InvalidInputError
		switch {
		case errors.As(err, &inv):
			return h.reply(c, req.ID, toolCallResult{
				Content: []textContent{{Type: "text", Text: inv.Message}},
				IsError: true,
			})
		case errors.Is(err, usecase.ErrUnknownTool):
			return h.fail(c, req.ID, codeInvalidParams, "Unknown tool: "+p.Name)
		default:
			h.logger.Error("mcp tool call error", xlogger.String("tool", p.Name), xlogger.Error(err))
			return h.fail(c, req.ID, codeInternalError, "Internal error")
		}
	}

	return h.reply(c, req.ID, toolCallResult{
		Content:           []textContent{{Type: "text", Text: string(res)}},
		StructuredContent: map[string]interface{}{"result": res},
	})
}

func (h *MCPEchoHandler) reply(c echo.Context, id json.RawMessage, result interface{}) error {
	return c.JSON(http.StatusOK, rpcResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

func (h *MCPEchoHandler) fail(c echo.Context, id json.RawMessage, code int, msg string) error {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return c.JSON(http.StatusOK, rpcResponse{JSONRPC: jsonRPCVersion, ID: id, Error: &rpcError{Code: code, Message: msg}})
}
