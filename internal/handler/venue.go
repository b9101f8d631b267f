package handler

import (
    "errors"
    "fmt"
    "log/slog"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/form"
    "github.com/iliyamo/fyyur/internal/metrics"
    "github.com/iliyamo/fyyur/internal/model"
    "github.com/iliyamo/fyyur/internal/repository"
)

// Venues lists every venue grouped by city and state.
func (h *Handler) Venues(c echo.Context) error {
    areas, err := h.venues.ListAreas(c.Request().Context())
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/venues", echo.Map{"Areas": areas})
}

// SearchVenues matches venue names against the search_term form value.
func (h *Handler) SearchVenues(c echo.Context) error {
    res, err := h.venues.Search(c.Request().Context(), c.FormValue("search_term"))
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/search", echo.Map{"Result": res, "Kind": "venues"})
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    v, err := h.venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }
    shows, err := h.shows.ListByVenue(ctx, id)
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/show_venue", echo.Map{"Venue": model.NewVenueDetail(v, shows, h.now())})
}

func venueFormData(heading, action, submit string, f form.VenueForm, errs map[string]string) echo.Map {
    return echo.Map{"Heading": heading, "Action": action, "Submit": submit, "Form": f, "Errors": errs}
}

// CreateVenueForm renders an empty venue form.
func (h *Handler) CreateVenueForm(c echo.Context) error {
    return c.Render(http.StatusOK, "forms/venue",
        venueFormData("List a new venue", "/venues/create", "Create venue", form.VenueForm{}, nil))
}

// CreateVenue stores a submitted venue and redirects home.
func (h *Handler) CreateVenue(c echo.Context) error {
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseVenue(params)
    failed := fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name)
    if err := f.Validate(); err != nil {
        countForm("venue_create", metrics.OutcomeInvalid)
        return renderForm(c, "forms/venue", failed,
            venueFormData("List a new venue", "/venues/create", "Create venue", f, form.Messages(err)))
    }
    ctx := c.Request().Context()
    v := f.Venue()
    if err := h.venues.Create(ctx, v); err != nil {
        slog.Error("create venue", "name", f.Name, "error", err)
        countForm("venue_create", metrics.OutcomeFailed)
        return h.redirectWith(c, "/", failed)
    }
    countForm("venue_create", metrics.OutcomeOK)
    h.changed(ctx)
    return h.redirectWith(c, "/", fmt.Sprintf("Venue %s was successfully listed!", v.Name))
}

// EditVenueForm renders the edit form pre-filled from the stored venue.
func (h *Handler) EditVenueForm(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    v, err := h.venues.GetByID(c.Request().Context(), id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }
    action := fmt.Sprintf("/venues/%d/edit", id)
    return c.Render(http.StatusOK, "forms/venue",
        venueFormData("Edit venue "+v.Name, action, "Save venue", form.VenueFormOf(v), nil))
}

// EditVenue overwrites every field of the venue and redirects to its page.
func (h *Handler) EditVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseVenue(params)
    detail := fmt.Sprintf("/venues/%d", id)
    failed := fmt.Sprintf("An error occurred. Venue %s could not be updated.", f.Name)
    if err := f.Validate(); err != nil {
        countForm("venue_edit", metrics.OutcomeInvalid)
        return renderForm(c, "forms/venue", failed,
            venueFormData("Edit venue "+f.Name, detail+"/edit", "Save venue", f, form.Messages(err)))
    }
    ctx := c.Request().Context()
    v := f.Venue()
    v.ID = id
    err = h.venues.Update(ctx, v)
    switch {
    case errors.Is(err, repository.ErrVenueNotFound):
        return echo.ErrNotFound
    case err != nil:
        slog.Error("update venue", "id", id, "error", err)
        countForm("venue_edit", metrics.OutcomeFailed)
        return h.redirectWith(c, detail, failed)
    }
    countForm("venue_edit", metrics.OutcomeOK)
    h.changed(ctx)
    return h.redirectWith(c, detail, fmt.Sprintf("Venue %s was successfully updated!", v.Name))
}

// DeleteVenue removes a venue and its shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    name, err := h.venues.Delete(ctx, id)
    switch {
    case errors.Is(err, repository.ErrVenueNotFound):
        return echo.ErrNotFound
    case err != nil:
        slog.Error("delete venue", "id", id, "error", err)
        return h.redirectWith(c, "/", fmt.Sprintf("An error occurred. %s could not be deleted.", deleteLabel(name, id)))
    }
    h.changed(ctx)
    return h.redirectWith(c, "/", fmt.Sprintf("%s was successfully deleted!", name))
}

// BookVenueForm renders the show form with the venue pre-filled.
func (h *Handler) BookVenueForm(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    if _, err := h.venues.GetByID(c.Request().Context(), id); errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }
    f := form.ShowForm{VenueID: fmt.Sprint(id), StartTime: h.defaultStart()}
    return c.Render(http.StatusOK, "forms/show", showFormData(fmt.Sprintf("/venues/%d/book", id), f, nil))
}

// BookVenue books a show at the venue named by the path.
func (h *Handler) BookVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseShow(params)
    f.VenueID = fmt.Sprint(id)
    return h.createShow(c, f, fmt.Sprintf("/venues/%d/book", id))
}

// deleteLabel names the entity in a failure flash when its name could not
// be read.
func deleteLabel(name string, id uint64) string {
    if name != "" {
        return name
    }
    return fmt.Sprintf("#%d", id)
}
