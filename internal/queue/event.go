// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// ShowBookedQueue is the durable queue carrying ShowBookedEvent messages.
const ShowBookedQueue = "show.booked"

// ShowBookedEvent is published when a show is successfully listed.  It
// carries both names so consumers never need to query the database.
type ShowBookedEvent struct {
    ShowID     uint64 `json:"show_id"`
    ArtistID   uint64 `json:"artist_id"`
    ArtistName string `json:"artist_name"`
    VenueID    uint64 `json:"venue_id"`
    VenueName  string `json:"venue_name"`
    StartTime  string `json:"start_time"`
    BookedAt   string `json:"booked_at"`
}
