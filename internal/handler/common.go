// Package handler exposes the HTTP handlers of the booking directory.  Every
// page is rendered server side; form submissions answer with a redirect and
// a flash message.
package handler

import (
    "context"
    "log/slog"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/metrics"
    "github.com/iliyamo/fyyur/internal/middleware"
    "github.com/iliyamo/fyyur/internal/repository"
    "github.com/iliyamo/fyyur/internal/service"
    "github.com/iliyamo/fyyur/internal/view"
)

// recentLimit is how many venues and artists the home page lists.
const recentLimit = 10

// Handler bundles the repositories and collaborators the pages need.
type Handler struct {
    venues  *repository.VenueRepo
    artists *repository.ArtistRepo
    shows   *repository.ShowRepo
    flash   *middleware.Flasher
    cache   *middleware.ResponseCache
    events  service.Publisher
    now     func() time.Time
}

// New constructs a Handler and panics if a required dependency is nil.
// A nil cache disables invalidation, nil events drop bookings silently and
// a nil clock uses time.Now.
func New(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo,
    flash *middleware.Flasher, cache *middleware.ResponseCache, events service.Publisher, now func() time.Time) *Handler {
    if venues == nil || artists == nil || shows == nil || flash == nil {
        panic("nil dependency passed to handler.New")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    if now == nil {
        now = time.Now
    }
    return &Handler{venues: venues, artists: artists, shows: shows, flash: flash, cache: cache, events: events, now: now}
}

// parseID reads the :id path parameter.  Anything but a positive integer
// that fits a signed 64-bit id column is treated as an unknown page.
func parseID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil || id <= 0 {
        return 0, echo.ErrNotFound
    }
    return uint64(id), nil
}

// redirectWith flashes msg and sends the browser to url with 303 so a
// reload never resubmits the form.
func (h *Handler) redirectWith(c echo.Context, url, msg string) error {
    if err := h.flash.Add(c, msg); err != nil {
        slog.Error("flash failed", "error", err)
    }
    return c.Redirect(http.StatusSeeOther, url)
}

// changed drops cached pages after a successful write.
func (h *Handler) changed(ctx context.Context) {
    if err := h.cache.Invalidate(ctx); err != nil {
        slog.Warn("cache invalidation failed", "error", err)
    }
}

// renderForm re-renders a rejected form with its errors and a flash.
func renderForm(c echo.Context, name, flash string, data echo.Map) error {
    return c.Render(http.StatusUnprocessableEntity, name, view.Page{Flashes: []string{flash}, Data: data})
}

func countForm(form, outcome string) {
    metrics.FormSubmissions.WithLabelValues(form, outcome).Inc()
}
