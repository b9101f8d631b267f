package model

// Venue is a place that hosts shows.  It corresponds to a row in the
// `Venue` table.  Genres are persisted as a JSON array.
type Venue struct {
    ID                 uint64   // Venue.id
    Name               string   // Venue.name
    City               string   // Venue.city
    State              string   // Venue.state (two letter code)
    Address            string   // Venue.address
    Phone              string   // Venue.phone, XXX-XXX-XXXX
    Genres             []string // Venue.genres
    ImageLink          string   // Venue.image_link
    FacebookLink       string   // Venue.facebook_link
    WebsiteLink        string   // Venue.website_link
    SeekingTalent      bool     // Venue.seeking_talent
    SeekingDescription string   // Venue.seeking_description
}

// Area is a (city, state) pair together with the venues located there.
type Area struct {
    City   string
    State  string
    Venues []*Venue
}

// VenueDetail is a venue plus its shows split at read time.
type VenueDetail struct {
    *Venue
    PastShows          []ShowListing
    UpcomingShows      []ShowListing
    PastShowsCount     int
    UpcomingShowsCount int
}

// GroupByArea buckets venues by (city, state).  Groups appear in the order
// their first venue appears in the input and each pair yields exactly one
// group.
func GroupByArea(venues []*Venue) []Area {
    type key struct{ city, state string }
    idx := make(map[key]int)
    var out []Area
    for _, v := range venues {
        k := key{v.City, v.State}
        i, ok := idx[k]
        if !ok {
            i = len(out)
            idx[k] = i
            out = append(out, Area{City: v.City, State: v.State})
        }
        out[i].Venues = append(out[i].Venues, v)
    }
    return out
}
