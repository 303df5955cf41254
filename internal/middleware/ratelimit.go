package middleware

import (
	"github.com/labstack/echo/v4"

	domrepo "TAMCP/internal/domain/repository"
	"TAMCP/internal/service/ratelimit"
	xhttp "TAMCP/pkg/http"
)

// RateLimit throttles callers per client IP with a token bucket.
// Rejected requests get 429 {"error":"Too Many Requests"}.
func RateLimit(l *ratelimit.Limiter, metrics domrepo.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				if metrics != nil {
					metrics.RecordError("rate_limited")
				}
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError())
			}
			return next(c)
		}
	}
}
