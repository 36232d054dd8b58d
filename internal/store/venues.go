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
	ErrVenueNotFound = errors.New("venue not found")
)

// CreateVenue inserts the venue and its genre associations in one transaction.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.insertVenue(ctx, tx, venue)
		return err
	})
	if err != nil {
		return 0, err
	}

	venue.ID = id
	return id, nil
}

func (s *Store) insertVenue(ctx context.Context, tx *sql.Tx, venue *models.Venue) (int64, error) {
	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state, address, phone, facebook_link,
		                    image_link, website_link, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
		venue.FacebookLink, venue.ImageLink, venue.WebsiteLink, venue.SeekingTalent,
		nullableDescription(venue.SeekingTalent, venue.SeekingDescription),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert venue: %w", err)
	}

	return id, s.linkGenres(ctx, tx, venueGenreLinks, id, venue.Genres)
}

// GetVenue retrieves a single venue by ID, including its genres.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var (
		v           models.Venue
		description sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, address, phone, facebook_link,
		       image_link, website_link, seeking_talent, seeking_description
		FROM venues
		WHERE id = $1
	`, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.FacebookLink,
		&v.ImageLink, &v.WebsiteLink, &v.SeekingTalent, &description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}
	v.SeekingDescription = description.String

	genres, err := s.genresFor(ctx, venueGenreLinks, id)
	if err != nil {
		return nil, err
	}
	v.Genres = genres

	return &v, nil
}

// UpdateVenue overwrites every field of the venue and replaces its genre set.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5,
		    facebook_link = $6, image_link = $7, website_link = $8,
		    seeking_talent = $9, seeking_description = $10
		WHERE id = $11
	`,
			venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
			venue.FacebookLink, venue.ImageLink, venue.WebsiteLink, venue.SeekingTalent,
			nullableDescription(venue.SeekingTalent, venue.SeekingDescription), id,
		)
		if err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		if rows == 0 {
			return ErrVenueNotFound
		}

		return s.replaceGenres(ctx, tx, venueGenreLinks, id, venue.Genres)
	})
}

// DeleteVenue removes a venue. Its shows and genre links go with it through
// ON DELETE CASCADE.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		if rows == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
}

const venueSummaryColumns = `
		SELECT v.id, v.name, v.city, v.state,
		       (SELECT COUNT(*) FROM shows s
		        WHERE s.venue_id = v.id AND s.start_time > $1) AS num_upcoming_shows
		FROM venues v`

// ListVenueSummaries returns all venues ordered by state then city, each with
// the number of shows starting after now.
func (s *Store) ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, venueSummaryColumns+`
		ORDER BY v.state ASC, v.city ASC, v.id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	return scanVenueSummaries(rows)
}

// SearchVenues returns venues whose name contains keyword, ignoring case.
func (s *Store) SearchVenues(ctx context.Context, keyword string, now time.Time) ([]models.VenueSummary, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(keyword)) + "%"
	rows, err := s.db.QueryContext(ctx, venueSummaryColumns+`
		WHERE v.name ILIKE $2
		ORDER BY v.id ASC
	`, now, pattern)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	return scanVenueSummaries(rows)
}

func scanVenueSummaries(rows *sql.Rows) ([]models.VenueSummary, error) {
	defer rows.Close()

	venues := []models.VenueSummary{}
	for rows.Next() {
		var v models.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}
