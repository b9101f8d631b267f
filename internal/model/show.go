package model

import "time"

// Show books an artist at a venue at a point in time.  This struct
// corresponds to a row in the `Show` table.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – references Artist.id.
//  VenueID   – references Venue.id.
//  StartTime – start of the show, stored in UTC.
type Show struct {
    ID        uint64
    ArtistID  uint64
    VenueID   uint64
    StartTime time.Time
}

// ShowListing is a show joined with the names and images of both sides.
// Listing pages and detail pages pick the fields they need.
type ShowListing struct {
    ID              uint64
    ArtistID        uint64
    ArtistName      string
    ArtistImageLink string
    VenueID         uint64
    VenueName       string
    VenueImageLink  string
    StartTime       time.Time
}

// SearchItem is the minimal projection returned by name search.
// NumUpcomingShows is always zero.
type SearchItem struct {
    ID               uint64
    Name             string
    NumUpcomingShows int
}

// SearchResult holds the matches of a name search.
type SearchResult struct {
    Term  string
    Count int
    Data  []SearchItem
}

// Partition splits shows into past and upcoming relative to now.  A show
// starting exactly at now is upcoming.  Input order is kept in both halves.
func Partition(shows []ShowListing, now time.Time) (past, upcoming []ShowListing) {
    past = []ShowListing{}
    upcoming = []ShowListing{}
    for _, s := range shows {
        if s.StartTime.Before(now) {
            past = append(past, s)
        } else {
            upcoming = append(upcoming, s)
        }
    }
    return past, upcoming
}

// NewVenueDetail partitions a venue's shows against now.
func NewVenueDetail(v *Venue, shows []ShowListing, now time.Time) *VenueDetail {
    past, upcoming := Partition(shows, now)
    return &VenueDetail{
        Venue:              v,
        PastShows:          past,
        UpcomingShows:      upcoming,
        PastShowsCount:     len(past),
        UpcomingShowsCount: len(upcoming),
    }
}

// NewArtistDetail partitions an artist's shows against now.
func NewArtistDetail(a *Artist, shows []ShowListing, now time.Time) *ArtistDetail {
    past, upcoming := Partition(shows, now)
    return &ArtistDetail{
        Artist:             a,
        PastShows:          past,
        UpcomingShows:      upcoming,
        PastShowsCount:     len(past),
        UpcomingShowsCount: len(upcoming),
    }
}
