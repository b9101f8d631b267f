package handler

import (
    "errors"
    "log/slog"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/form"
    "github.com/iliyamo/fyyur/internal/metrics"
    "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/repository"
)

const (
    showListed = "Show was successfully listed!"
    showFailed = "An error occurred. Show could not be listed."
)

// Shows lists every show, latest start first.
func (h *Handler) Shows(c echo.Context) error {
    shows, err := h.shows.ListAll(c.Request().Context())
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/shows", echo.Map{"Shows": shows})
}

func showFormData(action string, f form.ShowForm, errs map[string]string) echo.Map {
    return echo.Map{"Action": action, "Form": f, "Errors": errs}
}

// defaultStart pre-fills the start time field with the current minute.
func (h *Handler) defaultStart() string {
    return h.now().UTC().Format("2006-01-02 15:04")
}

// CreateShowForm renders an empty booking form.
func (h *Handler) CreateShowForm(c echo.Context) error {
    return c.Render(http.StatusOK, "forms/show",
        showFormData("/shows/create", form.ShowForm{StartTime: h.defaultStart()}, nil))
}

// CreateShow books a show from the submitted form.
func (h *Handler) CreateShow(c echo.Context) error {
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    return h.createShow(c, form.ParseShow(params), "/shows/create")
}

// createShow validates and stores a booking, then announces it.  action is
// where the form posts back to when it has to be shown again.
func (h *Handler) createShow(c echo.Context, f form.ShowForm, action string) error {
    if err := f.Validate(); err != nil {
        countForm("show_create", metrics.OutcomeInvalid)
        return renderForm(c, "forms/show", showFailed, showFormData(action, f, form.Messages(err)))
    }
    show, err := f.Show()
    if err != nil {
        countForm("show_create", metrics.OutcomeInvalid)
        return renderForm(c, "forms/show", showFailed, showFormData(action, f, form.Messages(err)))
    }

    ctx := c.Request().Context()
    listing, err := h.shows.Create(ctx, show)
    if err != nil {
        if errors.Is(err, repository.ErrArtistNotFound) || errors.Is(err, repository.ErrVenueNotFound) {
            slog.Info("booking rejected", "artist_id", show.ArtistID, "venue_id", show.VenueID, "reason", err)
        } else {
            slog.Error("create show", "error", err)
        }
        countForm("show_create", metrics.OutcomeFailed)
        return h.redirectWith(c, "/", showFailed)
    }
    countForm("show_create", metrics.OutcomeOK)
    h.changed(ctx)

    event := queue.ShowBookedEvent{
        ShowID:     listing.ID,
        ArtistID:   listing.ArtistID,
        ArtistName: listing.ArtistName,
        VenueID:    listing.VenueID,
        VenueName:  listing.VenueName,
        StartTime:  listing.StartTime.UTC().Format(time.RFC3339),
        BookedAt:   h.now().UTC().Format(time.RFC3339),
    }
    if err := h.events.PublishShowBooked(ctx, event); err != nil {
        slog.Warn("publish show.booked failed", "show_id", listing.ID, "error", err)
    }
    return h.redirectWith(c, "/", showListed)
}
