package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link,
	facebook_link, website_link, seeking_venue, seeking_description`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner) (*model.Artist, error) {
	var (
		a      model.Artist
		genres string
	)
	if err := s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres,
		&a.ImageLink, &a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	a.Genres = g
	return &a, nil
}

// Create inserts a new artist and populates a.ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = "INSERT INTO `Artist` (name, city, state, phone, genres, image_link, " +
			"facebook_link, website_link, seeking_venue, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, genres,
			a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID fetches an artist by id or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM `Artist` WHERE id = ?"
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM `Artist` ORDER BY id")
}

// ListRecent returns the most recently listed artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]*model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM `Artist` ORDER BY id DESC LIMIT ?", limit)
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string) (*model.SearchResult, error) {
	return searchByName(ctx, r.db, "Artist", term)
}

// Update overwrites every mutable field of the artist with id a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "Artist", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		const q = "UPDATE `Artist` SET name = ?, city = ?, state = ?, phone = ?, genres = ?, " +
			"image_link = ?, facebook_link = ?, website_link = ?, seeking_venue = ?, seeking_description = ? " +
			"WHERE id = ?"
		if _, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, genres,
			a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		return nil
	})
}

// Delete removes an artist together with its shows and returns the
// artist's name, also when a later step of the delete failed.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (string, error) {
	var name string
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT name FROM `Artist` WHERE id = ?", id).Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM `Show` WHERE artist_id = ?", id); err != nil {
			return fmt.Errorf("delete artist shows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM `Artist` WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		return nil
	})
	return name, err
}
