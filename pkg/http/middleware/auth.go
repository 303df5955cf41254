package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// unauthorizedBody is shared by every rejection so the response never hints at the cause.
var unauthorizedBody = map[string]string{"error": "Unauthorized"}

// BearerAuth rejects every request whose Authorization header does not carry
// exactly `Bearer <token>`. It runs before any handler reads the body.
func BearerAuth(token string) (echo.MiddlewareFunc, error) {
	if token == "" {
		return nil, errors.New("bearer auth: token must not be empty")
	}
	expected := []byte(token)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authorized(c.Request().Header.Get(echo.HeaderAuthorization), expected) {
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}
			return next(c)
		}
	}, nil
}

func authorized(header string, expected []byte) bool {
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	got := strings.TrimSpace(header[len(bearerPrefix):])
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), expected) == 1
}
