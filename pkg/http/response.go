package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ResultResponse writes 200 {"result": data}.
func ResultResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, ResultBody{Result: data})
}

// SuccessResponse writes data as is with 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes {"error": message} with status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// InternalServerErrorResponse writes a 500 without leaking the cause.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// AppErrorResponse writes application error response. Anything that is not
// an *AppError becomes a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			return InternalServerErrorResponse(c)
		}
		return c.JSON(appErr.Status, ErrorBody{Error: appErr.Message, Details: appErr.Details})
	}
	return InternalServerErrorResponse(c)
}

// ErrorHandler renders errors returned by handlers and echo itself
// (unknown route, method not allowed, body too large) as ErrorBody.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			msg = s
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = ErrorResponse(c, he.Code, msg)
		return
	}
	_ = AppErrorResponse(c, err)
}
