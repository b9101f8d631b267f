package middleware

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/metrics"
)

// Metrics records request counts and latency per route pattern.  Unmatched
// paths are folded into one label to keep cardinality bounded.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)

            status := c.Response().Status
            if err != nil {
                var he *echo.HTTPError
                if errors.As(err, &he) {
                    status = he.Code
                } else {
                    status = http.StatusInternalServerError
                }
            }
            route := c.Path()
            if route == "" || status == http.StatusNotFound {
                route = "unmatched"
            }
            method := c.Request().Method
            metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
            metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
            return err
        }
    }
}
