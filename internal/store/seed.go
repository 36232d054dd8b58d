package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fyyur/internal/models"
)

// SeedData is a batch of venues, artists and the shows booking them.
type SeedData struct {
	Venues  []models.Venue
	Artists []models.Artist
	Shows   []SeedShow
}

// SeedShow books Artists[Artist] at Venues[Venue].
type SeedShow struct {
	Venue     int
	Artist    int
	StartTime time.Time
}

// Seed writes data in a single transaction, but only when the venues, artists
// and shows tables are all empty. It reports whether anything was written.
func (s *Store) Seed(ctx context.Context, data SeedData) (bool, error) {
	for i, show := range data.Shows {
		if show.Venue < 0 || show.Venue >= len(data.Venues) || show.Artist < 0 || show.Artist >= len(data.Artists) {
			return false, fmt.Errorf("seed show %d: venue %d or artist %d out of range", i, show.Venue, show.Artist)
		}
	}

	seeded := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var populated bool
		if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM venues)
		    OR EXISTS (SELECT 1 FROM artists)
		    OR EXISTS (SELECT 1 FROM shows)
	`).Scan(&populated); err != nil {
			return fmt.Errorf("check existing data: %w", err)
		}
		if populated {
			return nil
		}

		venueIDs := make([]int64, len(data.Venues))
		for i := range data.Venues {
			id, err := s.insertVenue(ctx, tx, &data.Venues[i])
			if err != nil {
				return fmt.Errorf("seed venue %q: %w", data.Venues[i].Name, err)
			}
			venueIDs[i] = id
		}

		artistIDs := make([]int64, len(data.Artists))
		for i := range data.Artists {
			id, err := s.insertArtist(ctx, tx, &data.Artists[i])
			if err != nil {
				return fmt.Errorf("seed artist %q: %w", data.Artists[i].Name, err)
			}
			artistIDs[i] = id
		}

		for _, show := range data.Shows {
			row := &models.Show{VenueID: venueIDs[show.Venue], ArtistID: artistIDs[show.Artist], StartTime: show.StartTime}
			if _, err := insertShow(ctx, tx, row); err != nil {
				return fmt.Errorf("seed show: %w", err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
