package middleware

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: 2 * time.Second,
		TTL:            time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "test:rl",
	}
}

func expectBucket(mock redismock.ClientMock, l *RateLimiter, key string) *redismock.ExpectedCmd {
	return mock.ExpectEvalSha(limiterScript.Hash(), []string{key},
		l.now().UnixMilli(), l.cfg.Capacity, l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(), int64(l.cfg.TTL/time.Second))
}

func TestRateLimiterBlocksEmptyBucket(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRateLimiter(testRateConfig(), db)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return at }

	c, rec := newContext(http.MethodPost, "/venues/create")
	c.SetPath("/venues/create")
	key := buildRateKey(l.cfg, c)
	expectBucket(mock, l, key).SetVal([]interface{}{int64(0), int64(0), int64(1500)})

	called := false
	err := l.Middleware()(func(c echo.Context) error { called = true; return nil })(c)

	require.Error(t, err)
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.False(t, called)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiterAllows(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRateLimiter(testRateConfig(), db)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return at }

	c, rec := newContext(http.MethodPost, "/shows/create")
	c.SetPath("/shows/create")
	expectBucket(mock, l, buildRateKey(l.cfg, c)).SetVal([]interface{}{int64(1), int64(2), int64(0)})

	called := false
	require.NoError(t, l.Middleware()(func(c echo.Context) error { called = true; return nil })(c))
	assert.True(t, called)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRateLimiter(testRateConfig(), db)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return at }

	c, _ := newContext(http.MethodPost, "/artists/create")
	expectBucket(mock, l, buildRateKey(l.cfg, c)).SetErr(errors.New("connection refused"))

	called := false
	require.NoError(t, l.Middleware()(func(c echo.Context) error { called = true; return nil })(c))
	assert.True(t, called)
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	l := NewRateLimiter(testRateConfig(), nil)
	c, _ := newContext(http.MethodPost, "/venues/create")
	called := false
	require.NoError(t, l.Middleware()(func(c echo.Context) error { called = true; return nil })(c))
	assert.True(t, called)
}

func TestBuildRateKey(t *testing.T) {
	cfg := testRateConfig()
	c, _ := newContext(http.MethodPost, "/venues/create")
	c.Request().RemoteAddr = "10.0.0.1:1234"
	c.SetPath("/venues/create")

	assert.Equal(t, "test:rl:ip:10.0.0.1:route:POST /venues/create", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "test:rl:ip:10.0.0.1", buildRateKey(cfg, c))
	cfg.KeyStrategy = "route"
	assert.Equal(t, "test:rl:route:POST /venues/create", buildRateKey(cfg, c))
}
