package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

func render(t *testing.T, r *Renderer, name string, data any) string {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, c))
	return buf.String()
}

func TestNewParsesAllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/artists", "pages/search", "pages/show_venue",
		"pages/show_artist", "pages/shows", "forms/venue", "forms/artist", "forms/show", "errors/error",
	} {
		_, ok := r.pages[name]
		assert.True(t, ok, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "pages/nope", nil, nil))
}

func TestRenderVenueDetail(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	v := &model.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz", "Reggae"}, SeekingTalent: true, SeekingDescription: "Come play!"}
	d := model.NewVenueDetail(v, []model.ShowListing{
		{ArtistID: 4, ArtistName: "Guns N Petals", VenueID: 1, VenueName: "The Musical Hop", StartTime: now.Add(-time.Hour)},
		{ArtistID: 5, ArtistName: "Matt Quevedo", VenueID: 1, VenueName: "The Musical Hop", StartTime: now.Add(time.Hour)},
	}, now)

	out := render(t, r, "pages/show_venue", echo.Map{"Venue": d})
	assert.Contains(t, out, "<h1>The Musical Hop</h1>")
	assert.Contains(t, out, "1 Upcoming Shows")
	assert.Contains(t, out, "1 Past Shows")
	assert.Contains(t, out, "Matt Quevedo")
	assert.Contains(t, out, "Currently seeking talent")
	assert.Contains(t, out, "<span>Reggae</span>")
}

func TestRenderArtistDetailShowsVenueSide(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &model.Artist{ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}}
	d := model.NewArtistDetail(a, []model.ShowListing{{
		ArtistID: 4, ArtistName: "Guns N Petals", ArtistImageLink: "https://images.example.com/artist.jpg",
		VenueID: 1, VenueName: "The Musical Hop", VenueImageLink: "https://images.example.com/hop.jpg",
		StartTime: now.Add(time.Hour),
	}}, now)

	out := render(t, r, "pages/show_artist", echo.Map{"Artist": d})
	assert.Contains(t, out, `src="https://images.example.com/hop.jpg"`)
	assert.Contains(t, out, `href="/venues/1"`)
	assert.NotContains(t, out, "images.example.com/artist.jpg")
}

func TestRenderFlashes(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	out := render(t, r, "pages/home", Page{Flashes: []string{"Show was successfully listed!"}, Data: echo.Map{}})
	assert.Contains(t, out, "Show was successfully listed!")
	assert.Contains(t, out, "No venues yet.")
}

func TestRenderVenueFormKeepsSelections(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	out := render(t, r, "forms/venue", echo.Map{
		"Heading": "Edit venue",
		"Action":  "/venues/1/edit",
		"Submit":  "Save",
		"Form":    form.VenueForm{Name: "Hop", State: "NY", Genres: []string{"R&B"}},
		"Errors":  map[string]string{"phone": "cannot be blank"},
	})
	assert.Contains(t, out, `<option value="NY" selected>NY</option>`)
	assert.Contains(t, out, `<option value="R&amp;B" selected>R&amp;B</option>`)
	assert.Contains(t, out, "phone: cannot be blank")
	assert.Contains(t, out, `action="/venues/1/edit"`)
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sunday April, 1, 2035 at 8:00PM", FormatDateTime(ts, "full"))
	assert.Equal(t, "Sun 04, 01, 2035 8:00PM", FormatDateTime(ts, "medium"))
	assert.Equal(t, "Sun 04, 01, 2035 8:00PM", FormatDateTime(ts, ""))
	assert.Equal(t, "", FormatDateTime(time.Time{}, "full"))
}
