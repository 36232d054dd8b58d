package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fyyur/internal/models"
)

var (
	// ErrShowReferences indicates the show points at a venue or artist that does not exist.
	ErrShowReferences = errors.New("show references an unknown venue or artist")
)

// CreateShow books an artist at a venue.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertShow(ctx, tx, show)
		return err
	})
	if err != nil {
		return 0, err
	}

	show.ID = id
	return id, nil
}

func insertShow(ctx context.Context, tx *sql.Tx, show *models.Show) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO shows (venue_id, artist_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, show.VenueID, show.ArtistID, show.StartTime).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrShowReferences
		}
		return 0, fmt.Errorf("insert show: %w", err)
	}
	return id, nil
}

const showDetailsColumns = `
		SELECT s.id, s.venue_id, s.artist_id, s.start_time,
		       v.name, v.image_link, a.name, a.image_link
		FROM shows s
		INNER JOIN venues v ON s.venue_id = v.id
		INNER JOIN artists a ON s.artist_id = a.id`

// ListShows returns every show ordered by start time.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, showDetailsColumns+`
		ORDER BY s.start_time ASC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	return scanShows(rows)
}

// ListShowsByVenue returns the shows hosted by a venue ordered by start time.
func (s *Store) ListShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, showDetailsColumns+`
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select venue shows: %w", err)
	}
	return scanShows(rows)
}

// ListShowsByArtist returns the shows an artist plays ordered by start time.
func (s *Store) ListShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, showDetailsColumns+`
		WHERE s.artist_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist shows: %w", err)
	}
	return scanShows(rows)
}

func scanShows(rows *sql.Rows) ([]models.ShowWithDetails, error) {
	defer rows.Close()

	shows := []models.ShowWithDetails{}
	for rows.Next() {
		var sh models.ShowWithDetails
		if err := rows.Scan(
			&sh.ID, &sh.VenueID, &sh.ArtistID, &sh.StartTime,
			&sh.VenueName, &sh.VenueImageLink, &sh.ArtistName, &sh.ArtistImageLink,
		); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	return shows, nil
}
