// Package router builds the Echo instance and registers every route.
package router

import (
    "database/sql"
    "errors"
    "log/slog"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/handler"
    "github.com/iliyamo/fyyur/internal/middleware"
    "github.com/iliyamo/fyyur/internal/repository"
    "github.com/iliyamo/fyyur/internal/service"
    "github.com/iliyamo/fyyur/internal/view"
)

// Deps are the collaborators the HTTP layer is built from.  Redis may be
// nil, which turns off response caching and rate limiting.
type Deps struct {
    DB            *sql.DB
    Redis         *redis.Client
    Cache         config.CacheConfig
    RateLimit     config.RateLimitConfig
    FlashSecret   string
    SecureCookies bool
    Publisher     service.Publisher
    Now           func() time.Time
}

// New returns a ready to serve Echo instance.
func New(d Deps) (*echo.Echo, error) {
    if d.DB == nil {
        return nil, errors.New("router: nil DB")
    }
    renderer, err := view.New()
    if err != nil {
        return nil, err
    }

    e := echo.New()
    e.HideBanner = true
    e.Renderer = renderer
    e.HTTPErrorHandler = handler.ErrorHandler

    flash := middleware.NewFlasher(d.FlashSecret, d.SecureCookies)
    e.Use(echomw.Recover())
    e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
    e.Use(requestLogger())
    e.Use(middleware.Metrics())
    e.Use(flash.Middleware())

    cache := middleware.NewResponseCache(d.Cache, d.Redis)
    limiter := middleware.NewRateLimiter(d.RateLimit, d.Redis)
    h := handler.New(
        repository.NewVenueRepo(d.DB),
        repository.NewArtistRepo(d.DB),
        repository.NewShowRepo(d.DB),
        flash, cache, d.Publisher, d.Now,
    )

    RegisterRoutes(e, d.DB)
    e.GET("/", h.Home, cache.Middleware())
    RegisterVenues(e, h, cache.Middleware(), limiter.Middleware())
    RegisterArtists(e, h, cache.Middleware(), limiter.Middleware())
    RegisterShows(e, h, cache.Middleware(), limiter.Middleware())
    return e, nil
}

// RegisterRoutes registers the operational endpoints: the health check and
// the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
    e.GET("/healthz", handler.Health(db))
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func requestLogger() echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status,
                "latency", v.Latency, "request_id", v.RequestID}
            if v.Error != nil {
                attrs = append(attrs, "error", v.Error)
            }
            slog.Info("request", attrs...)
            return nil
        },
    })
}
