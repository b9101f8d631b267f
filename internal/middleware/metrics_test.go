package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/metrics"
)

func TestMetricsCountsByRoute(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/venues/3")
	c.SetPath("/venues/:id")
	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/venues/:id", "200"))

	h := Metrics()(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))

	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/venues/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestMetricsUsesHTTPErrorCode(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/nope")
	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))

	h := Metrics()(func(c echo.Context) error { return echo.ErrNotFound })
	assert.Error(t, h(c))

	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	assert.Equal(t, before+1, after)
}
