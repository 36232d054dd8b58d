package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyyur/internal/models"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
)

// CreateArtist inserts the artist and its genre associations in one transaction.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.insertArtist(ctx, tx, artist)
		return err
	})
	if err != nil {
		return 0, err
	}

	artist.ID = id
	return id, nil
}

func (s *Store) insertArtist(ctx context.Context, tx *sql.Tx, artist *models.Artist) (int64, error) {
	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, facebook_link,
		                     image_link, website_link, seeking_venue, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		artist.Name, artist.City, artist.State, artist.Phone,
		artist.FacebookLink, artist.ImageLink, artist.WebsiteLink, artist.SeekingVenue,
		nullableDescription(artist.SeekingVenue, artist.SeekingDescription),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert artist: %w", err)
	}

	return id, s.linkGenres(ctx, tx, artistGenreLinks, id, artist.Genres)
}

// GetArtist retrieves a single artist by ID, including its genres.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var (
		a           models.Artist
		description sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, phone, facebook_link,
		       image_link, website_link, seeking_venue, seeking_description
		FROM artists
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.FacebookLink,
		&a.ImageLink, &a.WebsiteLink, &a.SeekingVenue, &description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}
	a.SeekingDescription = description.String

	genres, err := s.genresFor(ctx, artistGenreLinks, id)
	if err != nil {
		return nil, err
	}
	a.Genres = genres

	return &a, nil
}

// UpdateArtist overwrites every field of the artist and replaces its genre set.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
		UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4,
		    facebook_link = $5, image_link = $6, website_link = $7,
		    seeking_venue = $8, seeking_description = $9
		WHERE id = $10
	`,
			artist.Name, artist.City, artist.State, artist.Phone,
			artist.FacebookLink, artist.ImageLink, artist.WebsiteLink, artist.SeekingVenue,
			nullableDescription(artist.SeekingVenue, artist.SeekingDescription), id,
		)
		if err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		if rows == 0 {
			return ErrArtistNotFound
		}

		return s.replaceGenres(ctx, tx, artistGenreLinks, id, artist.Genres)
	})
}

// DeleteArtist removes an artist together with its shows and genre links.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		if rows == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
}

const artistSummaryColumns = `
		SELECT a.id, a.name,
		       (SELECT COUNT(*) FROM shows s
		        WHERE s.artist_id = a.id AND s.start_time > $1) AS num_upcoming_shows
		FROM artists a`

// ListArtistSummaries returns every artist ordered by ID.
func (s *Store) ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, artistSummaryColumns+`
		ORDER BY a.id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	return scanArtistSummaries(rows)
}

// SearchArtists returns artists whose name contains keyword, ignoring case.
func (s *Store) SearchArtists(ctx context.Context, keyword string, now time.Time) ([]models.ArtistSummary, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(keyword)) + "%"
	rows, err := s.db.QueryContext(ctx, artistSummaryColumns+`
		WHERE a.name ILIKE $2
		ORDER BY a.id ASC
	`, now, pattern)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return scanArtistSummaries(rows)
}

func scanArtistSummaries(rows *sql.Rows) ([]models.ArtistSummary, error) {
	defer rows.Close()

	artists := []models.ArtistSummary{}
	for rows.Next() {
		var a models.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}
