package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TAMCP/internal/service/ratelimit"
	xhttp "TAMCP/pkg/http"
)

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(ratelimit.New(1, 0.001), nil))
	e.GET("/tools", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	rec := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too Many Requests"}`, rec.Body.String())
	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code)
}

func newLimitedServer(t *testing.T, opts ...xhttp.ServerOption) *echo.Echo {
	t.Helper()
	opts = append(opts,
		xhttp.WithAuthToken("tok"),
		xhttp.WithMiddleware(RateLimit(ratelimit.New(1, 0.001), nil)),
	)
	s, err := xhttp.NewServer(pingRoutes{}, opts...)
	require.NoError(t, err)
	return s.Echo()
}

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(e *echo.Echo) {
	e.GET("/tools", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
}

func callFrom(e *echo.Echo, remote, xff string) int {
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	req.RemoteAddr = remote + ":1234"
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	if xff != "" {
		req.Header.Set(echo.HeaderXForwardedFor, xff)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	e := newLimitedServer(t)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		codes = append(codes, callFrom(e, "10.0.0.1", fmt.Sprintf("1.2.3.%d", i)))
	}
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	e := newLimitedServer(t, xhttp.WithTrustedProxies([]string{"10.0.0.1"}))

	assert.Equal(t, http.StatusOK, callFrom(e, "10.0.0.1", "1.2.3.1"))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(e, "10.0.0.1", "1.2.3.1"))
	assert.Equal(t, http.StatusOK, callFrom(e, "10.0.0.1", "1.2.3.2"))

	// an untrusted peer cannot pick its own bucket
	assert.Equal(t, http.StatusOK, callFrom(e, "10.0.0.9", "1.2.3.3"))
	assert.Equal(t, http.StatusTooManyRequests, callFrom(e, "10.0.0.9", "1.2.3.4"))
}

func TestNewServerRejectsBadTrustedProxy(t *testing.T) {
	_, err := xhttp.NewServer(pingRoutes{}, xhttp.WithAuthToken("tok"), xhttp.WithTrustedProxies([]string{"not-an-ip"}))
	assert.Error(t, err)
}
