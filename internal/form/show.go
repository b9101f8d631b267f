package form

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

// startTimeLayouts are tried in order.  Layouts without a zone are read
// as UTC.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ShowForm is the submitted show booking form.
type ShowForm struct {
	ArtistID  string `json:"artist_id"`
	VenueID   string `json:"venue_id"`
	StartTime string `json:"start_time"`
}

// ParseShow reads a ShowForm from url-encoded form values.
func ParseShow(v url.Values) ShowForm {
	return ShowForm{
		ArtistID:  field(v, "artist_id"),
		VenueID:   field(v, "venue_id"),
		StartTime: field(v, "start_time"),
	}
}

// Validate checks that both ids are positive integers and that the start
// time parses.
func (f ShowForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ArtistID, validation.Required, validation.By(positiveID)),
		validation.Field(&f.VenueID, validation.Required, validation.By(positiveID)),
		validation.Field(&f.StartTime, validation.Required, validation.By(validStartTime)),
	)
}

// Show converts a validated form into a model.Show.
func (f ShowForm) Show() (*model.Show, error) {
	artistID, err := parseID(f.ArtistID)
	if err != nil {
		return nil, err
	}
	venueID, err := parseID(f.VenueID)
	if err != nil {
		return nil, err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// ParseStartTime accepts the layouts sent by browsers and by hand-typed
// input.
func ParseStartTime(s string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must look like 2006-01-02 15:04")
}

func positiveID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := parseID(s)
	return err
}

// parseID accepts positive ids that fit the signed 64-bit id columns.
func parseID(s string) (uint64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return uint64(n), nil
}

func validStartTime(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseStartTime(s)
	return err
}
