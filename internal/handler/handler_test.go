package handler_test

import (
    "context"
    "database/sql"
    "net/http"
    "net/http/httptest"
    "net/url"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/middleware"
    "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/router"
    "github.com/iliyamo/fyyur/internal/testutil"
)

var fixedNow = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
    mu     sync.Mutex
    events []queue.ShowBookedEvent
}

func (p *recordingPublisher) PublishShowBooked(_ context.Context, e queue.ShowBookedEvent) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.events = append(p.events, e)
    return nil
}

type app struct {
    t      *testing.T
    e      *echo.Echo
    db     *sql.DB
    events *recordingPublisher
}

func newApp(t *testing.T) *app {
    t.Helper()
    pub := &recordingPublisher{}
    db := testutil.NewDB(t)
    e, err := router.New(router.Deps{
        DB:          db,
        Cache:       config.CacheConfig{},
        RateLimit:   config.RateLimitConfig{},
        FlashSecret: "test-secret",
        Publisher:   pub,
        Now:         func() time.Time { return fixedNow },
    })
    require.NoError(t, err)
    return &app{t: t, e: e, db: db, events: pub}
}

func (a *app) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
    var req *http.Request
    if form != nil {
        req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    for _, c := range cookies {
        req.AddCookie(c)
    }
    rec := httptest.NewRecorder()
    a.e.ServeHTTP(rec, req)
    return rec
}

// follow performs the redirect of rec carrying its flash cookie.
func (a *app) follow(rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
    require.Equal(a.t, http.StatusSeeOther, rec.Code)
    var flash []*http.Cookie
    for _, c := range rec.Result().Cookies() {
        if c.Name == middleware.FlashCookie && c.Value != "" {
            flash = append(flash, c)
        }
    }
    return a.do(http.MethodGet, rec.Header().Get(echo.HeaderLocation), nil, flash...)
}

func venueForm(name string) url.Values {
    return url.Values{
        "name":          {name},
        "city":          {"San Francisco"},
        "state":         {"CA"},
        "address":       {"1015 Folsom Street"},
        "phone":         {"123-123-1234"},
        "genres":        {"Jazz", "Reggae"},
        "image_link":    {"https://images.example.com/hop.jpg"},
        "facebook_link": {"https://www.facebook.com/TheMusicalHop"},
    }
}

func artistForm(name string) url.Values {
    return url.Values{
        "name":   {name},
        "city":   {"San Francisco"},
        "state":  {"CA"},
        "phone":  {"326-123-5000"},
        "genres": {"Rock n Roll"},
    }
}

func TestHealthAndHome(t *testing.T) {
    a := newApp(t)

    rec := a.do(http.MethodGet, "/healthz", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())

    rec = a.do(http.MethodGet, "/", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "No venues yet.")
}

func TestCreateVenueFlashesOnce(t *testing.T) {
    a := newApp(t)

    rec := a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop"))
    assert.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

    home := a.follow(rec)
    assert.Equal(t, http.StatusOK, home.Code)
    assert.Contains(t, home.Body.String(), "Venue The Musical Hop was successfully listed!")
    assert.Contains(t, home.Body.String(), `href="/venues/1"`)

    again := a.do(http.MethodGet, "/", nil)
    assert.NotContains(t, again.Body.String(), "successfully listed")

    detail := a.do(http.MethodGet, "/venues/1", nil)
    assert.Equal(t, http.StatusOK, detail.Code)
    assert.Contains(t, detail.Body.String(), "1015 Folsom Street")
    assert.Contains(t, detail.Body.String(), "0 Upcoming Shows")
}

func TestCreateVenueInvalid(t *testing.T) {
    a := newApp(t)
    vals := venueForm("Park Square")
    vals.Set("phone", "5551234")

    rec := a.do(http.MethodPost, "/venues/create", vals)
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    body := rec.Body.String()
    assert.Contains(t, body, "An error occurred. Venue Park Square could not be listed.")
    assert.Contains(t, body, "phone")
    assert.Contains(t, body, `value="Park Square"`)

    list := a.do(http.MethodGet, "/venues", nil)
    assert.NotContains(t, list.Body.String(), "Park Square")
}

func TestNotFoundPages(t *testing.T) {
    a := newApp(t)
    for _, target := range []string{"/venues/abc", "/venues/42", "/artists/0", "/artists/7/edit", "/nowhere",
        "/venues/9223372036854775813", "/artists/-1", "/venues/18446744073709551615/edit"} {
        rec := a.do(http.MethodGet, target, nil)
        assert.Equal(t, http.StatusNotFound, rec.Code, target)
        assert.Contains(t, rec.Body.String(), "does not exist", target)
    }
    rec := a.do(http.MethodDelete, "/venues/42/delete", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditArtist(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/artists/create", artistForm("Guns N Petals")).Code)

    form := a.do(http.MethodGet, "/artists/1/edit", nil)
    assert.Equal(t, http.StatusOK, form.Code)
    assert.Contains(t, form.Body.String(), `value="Guns N Petals"`)

    vals := artistForm("Guns N Roses")
    vals.Set("seeking_venue", "y")
    vals.Set("seeking_description", "Looking for shows in the Bay Area.")
    rec := a.do(http.MethodPost, "/artists/1/edit", vals)
    assert.Equal(t, "/artists/1", rec.Header().Get(echo.HeaderLocation))

    page := a.follow(rec)
    body := page.Body.String()
    assert.Contains(t, body, "Artist Guns N Roses was successfully updated!")
    assert.Contains(t, body, "Looking for shows in the Bay Area.")

    missing := a.do(http.MethodPost, "/artists/9/edit", artistForm("Nobody"))
    assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestSearch(t *testing.T) {
    a := newApp(t)
    for _, name := range []string{"The Musical Hop", "Park Square Live Music & Coffee", "The Dueling Pianos Bar"} {
        require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/venues/create", venueForm(name)).Code)
    }

    rec := a.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"hop"}})
    assert.Equal(t, http.StatusOK, rec.Code)
    body := rec.Body.String()
    assert.Contains(t, body, `Number of search results for "hop": 1`)
    assert.Contains(t, body, "The Musical Hop")
    assert.NotContains(t, body, "Dueling")

    rec = a.do(http.MethodPost, "/artists/search", url.Values{"search_term": {"A"}})
    assert.Contains(t, rec.Body.String(), ": 0")
}

func TestBookShow(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop")).Code)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/artists/create", artistForm("Guns N Petals")).Code)

    rec := a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00"},
    })
    home := a.follow(rec)
    assert.Contains(t, home.Body.String(), "Show was successfully listed!")

    past := a.do(http.MethodPost, "/venues/1/book", url.Values{
        "artist_id": {"1"}, "venue_id": {"99"}, "start_time": {"2019-05-21T21:30"},
    })
    assert.Contains(t, a.follow(past).Body.String(), "Show was successfully listed!")

    venue := a.do(http.MethodGet, "/venues/1", nil).Body.String()
    assert.Contains(t, venue, "1 Upcoming Shows")
    assert.Contains(t, venue, "1 Past Shows")
    assert.Contains(t, venue, "Guns N Petals")

    shows := a.do(http.MethodGet, "/shows", nil).Body.String()
    assert.Less(t, strings.Index(shows, "2035"), strings.Index(shows, "2019"))

    require.Len(t, a.events.events, 2)
    ev := a.events.events[0]
    assert.Equal(t, uint64(1), ev.ShowID)
    assert.Equal(t, "Guns N Petals", ev.ArtistName)
    assert.Equal(t, "The Musical Hop", ev.VenueName)
    assert.Equal(t, "2035-04-01T20:00:00Z", ev.StartTime)
    assert.Equal(t, fixedNow.Format(time.RFC3339), ev.BookedAt)
}

func TestBookShowUnknownArtist(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop")).Code)

    rec := a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id": {"5"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00"},
    })
    assert.Contains(t, a.follow(rec).Body.String(), "An error occurred. Show could not be listed.")
    assert.Empty(t, a.events.events)
    assert.Contains(t, a.do(http.MethodGet, "/shows", nil).Body.String(), "No shows.")
}

func TestBookShowInvalid(t *testing.T) {
    a := newApp(t)
    rec := a.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {"x"}, "start_time": {"soon"}})
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.Contains(t, rec.Body.String(), "An error occurred. Show could not be listed.")
}

func TestBookShowIDOutOfRange(t *testing.T) {
    a := newApp(t)
    rec := a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id": {"9223372036854775813"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00"},
    })
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.Contains(t, rec.Body.String(), "artist_id: must be a positive integer")
}

func TestBookingFormsPrefill(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/artists/create", artistForm("Matt Quevedo")).Code)

    rec := a.do(http.MethodGet, "/artists/1/book", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    body := rec.Body.String()
    assert.Contains(t, body, `name="artist_id" value="1"`)
    assert.Contains(t, body, `value="2030-01-01 12:00"`)
    assert.Contains(t, body, `action="/artists/1/book"`)

    assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/venues/1/book", nil).Code)
}

func TestDeleteVenueCascades(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop")).Code)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/artists/create", artistForm("Guns N Petals")).Code)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/shows/create", url.Values{
        "artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00"},
    }).Code)

    rec := a.do(http.MethodDelete, "/venues/1/delete", nil)
    assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
    assert.Contains(t, a.follow(rec).Body.String(), "The Musical Hop was successfully deleted!")

    assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/venues/1", nil).Code)
    artist := a.do(http.MethodGet, "/artists/1", nil).Body.String()
    assert.Contains(t, artist, "0 Upcoming Shows")
}

func TestDeleteVenueFailureKeepsRow(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/venues/create", venueForm("The Musical Hop")).Code)
    _, err := a.db.Exec("CREATE TRIGGER venue_delete_fails BEFORE DELETE ON `Venue` BEGIN SELECT RAISE(ABORT, 'locked'); END;")
    require.NoError(t, err)

    rec := a.do(http.MethodGet, "/venues/1/delete", nil)
    assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
    body := a.follow(rec).Body.String()
    assert.Contains(t, body, "An error occurred. The Musical Hop could not be deleted.")
    assert.NotContains(t, body, "successfully deleted")

    detail := a.do(http.MethodGet, "/venues/1", nil)
    assert.Equal(t, http.StatusOK, detail.Code)
    assert.Contains(t, detail.Body.String(), "<h1>The Musical Hop</h1>")
}

func TestDeleteArtistFailureKeepsRow(t *testing.T) {
    a := newApp(t)
    require.Equal(t, http.StatusSeeOther, a.do(http.MethodPost, "/artists/create", artistForm("Guns N Petals")).Code)
    _, err := a.db.Exec("CREATE TRIGGER artist_delete_fails BEFORE DELETE ON `Artist` BEGIN SELECT RAISE(ABORT, 'locked'); END;")
    require.NoError(t, err)

    rec := a.do(http.MethodDelete, "/artists/1/delete", nil)
    body := a.follow(rec).Body.String()
    assert.Contains(t, body, "An error occurred. Guns N Petals could not be deleted.")
    assert.NotContains(t, body, "successfully deleted")
    assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/artists/1", nil).Code)
}
