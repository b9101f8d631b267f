package handler

import (
    "errors"
    "log/slog"
    "net/http"

    "github.com/labstack/echo/v4"
)

// ErrorHandler renders the error page for any error a handler returns.
// Unknown errors become 500 and are logged; the page never shows
// internal details.
func ErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    code := http.StatusInternalServerError
    msg := "Something went wrong on our side. Please try again later."
    var he *echo.HTTPError
    if errors.As(err, &he) {
        code = he.Code
        switch {
        case code == http.StatusNotFound:
            msg = "The page you are looking for does not exist."
        case code < http.StatusInternalServerError:
            if s, ok := he.Message.(string); ok {
                msg = s
            } else {
                msg = http.StatusText(code)
            }
        }
    }
    if code >= http.StatusInternalServerError {
        slog.Error("request failed", "method", c.Request().Method, "uri", c.Request().RequestURI,
            "status", code, "error", err, "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
    }
    if c.Request().Method == http.MethodHead {
        _ = c.NoContent(code)
        return
    }
    if rerr := c.Render(code, "errors/error", echo.Map{"Code": code, "Message": msg}); rerr != nil {
        slog.Error("render error page", "error", rerr)
        _ = c.String(code, http.StatusText(code))
    }
}
