package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
	facebook_link, website_link, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var (
		v      model.Venue
		genres string
	)
	if err := s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	v.Genres = g
	return &v, nil
}

// Create inserts a new venue.  On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = "INSERT INTO `Venue` (name, city, state, address, phone, genres, image_link, " +
			"facebook_link, website_link, seeking_talent, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, genres,
			v.ImageLink, v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue by id.  It returns ErrVenueNotFound when no row
// matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM `Venue` WHERE id = ?"
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM `Venue` ORDER BY id")
}

// ListRecent returns the most recently listed venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]*model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM `Venue` ORDER BY id DESC LIMIT ?", limit)
}

// ListAreas groups every venue by (city, state).
func (r *VenueRepo) ListAreas(ctx context.Context) ([]model.Area, error) {
	venues, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.GroupByArea(venues), nil
}

// Search returns venues whose name contains term, ignoring case.
func (r *VenueRepo) Search(ctx context.Context, term string) (*model.SearchResult, error) {
	return searchByName(ctx, r.db, "Venue", term)
}

// Update overwrites every mutable field of the venue with id v.ID.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "Venue", v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		const q = "UPDATE `Venue` SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?, " +
			"image_link = ?, facebook_link = ?, website_link = ?, seeking_talent = ?, seeking_description = ? " +
			"WHERE id = ?"
		if _, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, genres,
			v.ImageLink, v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		return nil
	})
}

// Delete removes a venue together with its shows and returns the venue's
// name.  Nothing is removed when any step fails; the name is still returned
// when it was read before the failure.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (string, error) {
	var name string
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT name FROM `Venue` WHERE id = ?", id).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM `Show` WHERE venue_id = ?", id); err != nil {
			return fmt.Errorf("delete venue shows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM `Venue` WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		return nil
	})
	return name, err
}

// searchByName runs the shared name search against the Venue or Artist
// table.  Matching is a case-insensitive substring test with no wildcards.
func searchByName(ctx context.Context, db *sql.DB, table, term string) (*model.SearchResult, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM `"+table+"` ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := strings.ToLower(strings.TrimSpace(term))
	res := &model.SearchResult{Term: term, Data: []model.SearchItem{}}
	for rows.Next() {
		var it model.SearchItem
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, err
		}
		if nameMatches(it.Name, needle) {
			res.Data = append(res.Data, it)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	res.Count = len(res.Data)
	return res, nil
}
