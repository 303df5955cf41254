package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEcho(t *testing.T, token string) *echo.Echo {
	t.Helper()
	mw, err := BearerAuth(token)
	require.NoError(t, err)

	e := echo.New()
	e.Use(mw)
	e.POST("/call", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestBearerAuthRejectsWithIdenticalBody(t *testing.T) {
	e := newAuthEcho(t, "s3cret")

	headers := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic s3cret",
		"no space":     "Bearers3cret",
		"empty token":  "Bearer ",
		"wrong token":  "Bearer nope",
		"prefix only":  "Bearer s3cre",
		"lower scheme": "bearer s3cret",
	}
	for name, h := range headers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/call", strings.NewReader(`{"name":"rsi"}`))
			if h != "" {
				req.Header.Set(echo.HeaderAuthorization, h)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestBearerAuthAccepts(t *testing.T) {
	e := newAuthEcho(t, "s3cret")

	for _, h := range []string{"Bearer s3cret", "Bearer   s3cret  "} {
		req := httptest.NewRequest(http.MethodPost, "/call", nil)
		req.Header.Set(echo.HeaderAuthorization, h)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, h)
	}
}

func TestBearerAuthRequiresToken(t *testing.T) {
	_, err := BearerAuth("")
	assert.Error(t, err)
}
