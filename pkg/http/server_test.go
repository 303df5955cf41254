package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return SuccessResponse(c, map[string]string{"status": "ok"}) })
	e.GET("/boom", func(c echo.Context) error { panic("boom") })
	e.GET("/missing", func(c echo.Context) error { return NotFoundError("no such thing") })
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(pingHandler{},
		WithAuthToken("tok"),
		WithMetrics(prometheus.NewRegistry(), "/metrics", 0),
	)
	require.NoError(t, err)
	return s
}

func do(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestNewServerRequiresToken(t *testing.T) {
	_, err := NewServer(pingHandler{})
	assert.Error(t, err)
}

func TestServerAuthCoversAllRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/ping", "/metrics", "/does-not-exist"} {
		rec := do(s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String(), path)
	}
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/ping", "tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(s, http.MethodGet, "/metrics", "tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))

	rec = do(s, http.MethodGet, "/missing", "tok")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no such thing"}`, rec.Body.String())

	rec = do(s, http.MethodGet, "/nowhere", "tok")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestServerRecoversPanics(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/boom", "tok")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}
