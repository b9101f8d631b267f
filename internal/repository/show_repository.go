package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo encapsulates all database queries related to shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the provided DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const listingSelect = "SELECT s.id, s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time " +
	"FROM `Show` s JOIN `Artist` a ON a.id = s.artist_id JOIN `Venue` v ON v.id = s.venue_id "

// Create books an artist at a venue.  Both references are checked inside
// the same transaction as the insert; ErrArtistNotFound or ErrVenueNotFound
// is returned and nothing is written when either is missing.  The returned
// listing carries the names of both sides.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) (*model.ShowListing, error) {
	s.StartTime = dbTime(s.StartTime)
	l := &model.ShowListing{ArtistID: s.ArtistID, VenueID: s.VenueID, StartTime: s.StartTime}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT name, image_link FROM `Artist` WHERE id = ?", s.ArtistID).
			Scan(&l.ArtistName, &l.ArtistImageLink); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if err := tx.QueryRowContext(ctx, "SELECT name, image_link FROM `Venue` WHERE id = ?", s.VenueID).
			Scan(&l.VenueName, &l.VenueImageLink); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		res, err := tx.ExecContext(ctx, "INSERT INTO `Show` (artist_id, venue_id, start_time) VALUES (?, ?, ?)",
			s.ArtistID, s.VenueID, s.StartTime)
		if err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		l.ID = s.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListAll returns every show, latest start first.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.query(ctx, listingSelect+"ORDER BY s.start_time DESC, s.id DESC")
}

// ListByVenue returns the shows booked at a venue in start order.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.query(ctx, listingSelect+"WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows an artist is booked for in start order.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.query(ctx, listingSelect+"WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}

func (r *ShowRepo) query(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(&l.ID, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink,
			&l.VenueID, &l.VenueName, &l.VenueImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		l.StartTime = l.StartTime.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
