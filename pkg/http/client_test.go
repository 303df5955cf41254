package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoToolHandler struct{}

func (echoToolHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/tools", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{"tools": []ToolInfo{{Name: "sma"}}})
	})
	e.POST("/call", func(c echo.Context) error {
		var req struct {
			Name      string          `json:"name"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.Name != "sma" {
			return NotFoundErrorf("unknown tool: %s", req.Name)
		}
		return ResultResponse(c, req.Arguments)
	})
}

func newClientServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := NewServer(echoToolHandler{}, WithAuthToken("tok"))
	require.NoError(t, err)
	ts := httptest.NewServer(s.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func TestClientCallsTools(t *testing.T) {
	ts := newClientServer(t)
	c := NewClient(ts.URL+"/", WithToken("tok"))

	tools, err := c.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "sma", tools[0].Name)

	res, err := c.CallTool(context.Background(), "sma", json.RawMessage(`{"period":2}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":2}`, string(res))
}

func TestClientReportsServerErrors(t *testing.T) {
	ts := newClientServer(t)

	_, err := NewClient(ts.URL, WithToken("tok")).CallTool(context.Background(), "adx", nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "unknown tool: adx", se.Message)

	_, err = NewClient(ts.URL).ListTools(context.Background())
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Unauthorized", se.Message)
}
