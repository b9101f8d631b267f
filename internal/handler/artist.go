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

// Artists lists every artist by id.
func (h *Handler) Artists(c echo.Context) error {
    artists, err := h.artists.ListAll(c.Request().Context())
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/artists", echo.Map{"Artists": artists})
}

// SearchArtists matches artist names against the search_term form value.
func (h *Handler) SearchArtists(c echo.Context) error {
    res, err := h.artists.Search(c.Request().Context(), c.FormValue("search_term"))
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/search", echo.Map{"Result": res, "Kind": "artists"})
}

func (h *Handler) loadArtist(c echo.Context) (*model.Artist, error) {
    id, err := parseID(c)
    if err != nil {
        return nil, err
    }
    a, err := h.artists.GetByID(c.Request().Context(), id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return nil, echo.ErrNotFound
    }
    return a, err
}

// ShowArtist renders one artist with past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
    a, err := h.loadArtist(c)
    if err != nil {
        return err
    }
    shows, err := h.shows.ListByArtist(c.Request().Context(), a.ID)
    if err != nil {
        return err
    }
    return c.Render(http.StatusOK, "pages/show_artist", echo.Map{"Artist": model.NewArtistDetail(a, shows, h.now())})
}

func artistFormData(heading, action, submit string, f form.ArtistForm, errs map[string]string) echo.Map {
    return echo.Map{"Heading": heading, "Action": action, "Submit": submit, "Form": f, "Errors": errs}
}

func (h *Handler) CreateArtistForm(c echo.Context) error {
    return c.Render(http.StatusOK, "forms/artist",
        artistFormData("List a new artist", "/artists/create", "Create artist", form.ArtistForm{}, nil))
}

// CreateArtist stores a submitted artist and redirects home.
func (h *Handler) CreateArtist(c echo.Context) error {
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseArtist(params)
    failed := fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name)
    if err := f.Validate(); err != nil {
        countForm("artist_create", metrics.OutcomeInvalid)
        return renderForm(c, "forms/artist", failed,
            artistFormData("List a new artist", "/artists/create", "Create artist", f, form.Messages(err)))
    }
    ctx := c.Request().Context()
    a := f.Artist()
    if err := h.artists.Create(ctx, a); err != nil {
        slog.Error("create artist", "name", f.Name, "error", err)
        countForm("artist_create", metrics.OutcomeFailed)
        return h.redirectWith(c, "/", failed)
    }
    countForm("artist_create", metrics.OutcomeOK)
    h.changed(ctx)
    return h.redirectWith(c, "/", fmt.Sprintf("Artist %s was successfully listed!", a.Name))
}

func (h *Handler) EditArtistForm(c echo.Context) error {
    a, err := h.loadArtist(c)
    if err != nil {
        return err
    }
    action := fmt.Sprintf("/artists/%d/edit", a.ID)
    return c.Render(http.StatusOK, "forms/artist",
        artistFormData("Edit artist "+a.Name, action, "Save artist", form.ArtistFormOf(a), nil))
}

// EditArtist overwrites every field of the artist and redirects to its page.
func (h *Handler) EditArtist(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseArtist(params)
    detail := fmt.Sprintf("/artists/%d", id)
    failed := fmt.Sprintf("An error occurred. Artist %s could not be updated.", f.Name)
    if err := f.Validate(); err != nil {
        countForm("artist_edit", metrics.OutcomeInvalid)
        return renderForm(c, "forms/artist", failed,
            artistFormData("Edit artist "+f.Name, detail+"/edit", "Save artist", f, form.Messages(err)))
    }
    ctx := c.Request().Context()
    a := f.Artist()
    a.ID = id
    err = h.artists.Update(ctx, a)
    switch {
    case errors.Is(err, repository.ErrArtistNotFound):
        return echo.ErrNotFound
    case err != nil:
        slog.Error("update artist", "id", id, "error", err)
        countForm("artist_edit", metrics.OutcomeFailed)
        return h.redirectWith(c, detail, failed)
    }
    countForm("artist_edit", metrics.OutcomeOK)
    h.changed(ctx)
    return h.redirectWith(c, detail, fmt.Sprintf("Artist %s was successfully updated!", a.Name))
}

// DeleteArtist removes an artist and its shows.
func (h *Handler) DeleteArtist(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    name, err := h.artists.Delete(ctx, id)
    switch {
    case errors.Is(err, repository.ErrArtistNotFound):
        return echo.ErrNotFound
    case err != nil:
        slog.Error("delete artist", "id", id, "error", err)
        return h.redirectWith(c, "/", fmt.Sprintf("An error occurred. %s could not be deleted.", deleteLabel(name, id)))
    }
    h.changed(ctx)
    return h.redirectWith(c, "/", fmt.Sprintf("%s was successfully deleted!", name))
}

// BookArtistForm renders the show form with the artist pre-filled.
func (h *Handler) BookArtistForm(c echo.Context) error {
    a, err := h.loadArtist(c)
    if err != nil {
        return err
    }
    f := form.ShowForm{ArtistID: fmt.Sprint(a.ID), StartTime: h.defaultStart()}
    return c.Render(http.StatusOK, "forms/show", showFormData(fmt.Sprintf("/artists/%d/book", a.ID), f, nil))
}

// BookArtist books a show for the artist named by the path.
func (h *Handler) BookArtist(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    params, err := c.FormParams()
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
    }
    f := form.ParseShow(params)
    f.ArtistID = fmt.Sprint(id)
    return h.createShow(c, f, fmt.Sprintf("/artists/%d/book", id))
}
