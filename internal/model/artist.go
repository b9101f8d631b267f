package model

// Artist is a performer that can be booked at venues.  Same shape as Venue
// minus the street address.
type Artist struct {
    ID                 uint64
    Name               string
    City               string
    State              string
    Phone              string
    Genres             []string
    ImageLink          string
    FacebookLink       string
    WebsiteLink        string
    SeekingVenue       bool
    SeekingDescription string
}

// ArtistDetail is an artist plus its shows split at read time.
type ArtistDetail struct {
    *Artist
    PastShows          []ShowListing
    UpcomingShows      []ShowListing
    PastShowsCount     int
    UpcomingShowsCount int
}
