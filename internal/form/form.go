package form

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iliyamo/fyyur/internal/model"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

var (
	phoneRule = validation.Match(phonePattern).Error("follow the format XXX-XXX-XXXX")
	stateRule = validation.In(anyOf(States)...).Error("must be a US state code")
	genreRule = validation.Each(validation.In(anyOf(Genres)...).Error("unknown genre"))
)

// VenueForm is the submitted venue form.  The json tags name the form
// fields and key validation errors.
type VenueForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// ArtistForm is the submitted artist form.
type ArtistForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// ParseVenue reads a VenueForm from url-encoded form values.
func ParseVenue(v url.Values) VenueForm {
	return VenueForm{
		Name:               field(v, "name"),
		City:               field(v, "city"),
		State:              strings.ToUpper(field(v, "state")),
		Address:            field(v, "address"),
		Phone:              field(v, "phone"),
		Genres:             multi(v, "genres"),
		ImageLink:          field(v, "image_link"),
		FacebookLink:       field(v, "facebook_link"),
		WebsiteLink:        field(v, "website_link"),
		SeekingTalent:      checkbox(v, "seeking_talent"),
		SeekingDescription: field(v, "seeking_description"),
	}
}

// ParseArtist reads an ArtistForm from url-encoded form values.
func ParseArtist(v url.Values) ArtistForm {
	return ArtistForm{
		Name:               field(v, "name"),
		City:               field(v, "city"),
		State:              strings.ToUpper(field(v, "state")),
		Phone:              field(v, "phone"),
		Genres:             multi(v, "genres"),
		ImageLink:          field(v, "image_link"),
		FacebookLink:       field(v, "facebook_link"),
		WebsiteLink:        field(v, "website_link"),
		SeekingVenue:       checkbox(v, "seeking_venue"),
		SeekingDescription: field(v, "seeking_description"),
	}
}

// Validate checks required fields and formats.
func (f VenueForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required, stateRule),
		validation.Field(&f.Address, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Phone, validation.Required, phoneRule),
		validation.Field(&f.Genres, validation.Required, genreRule),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.WebsiteLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.SeekingDescription, validation.Length(0, 500)),
	)
}

// Validate checks required fields and formats.
func (f ArtistForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, validation.Required, stateRule),
		validation.Field(&f.Phone, validation.Required, phoneRule),
		validation.Field(&f.Genres, validation.Required, genreRule),
		validation.Field(&f.ImageLink, is.URL, validation.Length(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.WebsiteLink, is.URL, validation.Length(0, 120)),
		validation.Field(&f.SeekingDescription, validation.Length(0, 500)),
	)
}

// Venue copies the form onto a new model.
func (f VenueForm) Venue() *model.Venue {
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// Artist copies the form onto a new model.
func (f ArtistForm) Artist() *model.Artist {
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormOf pre-fills the edit form from a stored venue.
func VenueFormOf(v *model.Venue) VenueForm {
	return VenueForm{
		Name: v.Name, City: v.City, State: v.State, Address: v.Address, Phone: v.Phone,
		Genres: v.Genres, ImageLink: v.ImageLink, FacebookLink: v.FacebookLink,
		WebsiteLink: v.WebsiteLink, SeekingTalent: v.SeekingTalent, SeekingDescription: v.SeekingDescription,
	}
}

// ArtistFormOf pre-fills the edit form from a stored artist.
func ArtistFormOf(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name: a.Name, City: a.City, State: a.State, Phone: a.Phone,
		Genres: a.Genres, ImageLink: a.ImageLink, FacebookLink: a.FacebookLink,
		WebsiteLink: a.WebsiteLink, SeekingVenue: a.SeekingVenue, SeekingDescription: a.SeekingDescription,
	}
}

// Messages flattens a validation error into field -> message.  Errors that
// are not field errors are reported under "form".
func Messages(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for k, e := range verrs {
			out[k] = e.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

func field(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

// multi returns the trimmed, non-empty values of key without duplicates,
// keeping submission order.
func multi(v url.Values, key string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range v[key] {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func checkbox(v url.Values, key string) bool {
	switch strings.ToLower(field(v, key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}
