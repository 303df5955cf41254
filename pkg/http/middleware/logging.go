package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "TAMCP/pkg/logger"
)

// RequestLogging logs one line per request.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				// commit the error response so the logged status is the real one
				c.Error(err)
			}

			l.Info("http request",
				applogger.String("method", req.Method),
				applogger.String("path", req.URL.Path),
				applogger.String("route", c.Path()),
				applogger.Int("status", c.Response().Status),
				applogger.String("remote_ip", c.RealIP()),
				applogger.Duration("latency_ms", time.Since(start)),
			)
			return nil
		}
	}
}
