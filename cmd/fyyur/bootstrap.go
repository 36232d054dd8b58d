package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// demoStore is the slice of the store the seeder writes through.
type demoStore interface {
	Seed(ctx context.Context, data store.SeedData) (bool, error)
}

var _ demoStore = (*store.Store)(nil)

type demoShow struct {
	venue, artist int
	start         string
}

var (
	demoVenues = []models.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1234",
			WebsiteLink:        "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			WebsiteLink:  "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			WebsiteLink:  "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
		},
	}

	demoArtists = []models.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			WebsiteLink:        "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
		},
		{
			Name:         "Matt Quevedo",
			Genres:       []string{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
		},
		{
			Name:      "The Wild Sax Band",
			Genres:    []string{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432-325-5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
		},
	}

	// Indexes into demoVenues and demoArtists.
	demoShows = []demoShow{
		{venue: 0, artist: 0, start: "2019-05-21 21:30:00"},
		{venue: 2, artist: 1, start: "2019-06-15 23:00:00"},
		{venue: 2, artist: 2, start: "2035-04-01 20:00:00"},
		{venue: 2, artist: 2, start: "2035-04-08 20:00:00"},
		{venue: 2, artist: 2, start: "2035-04-15 20:00:00"},
	}
)

// bootstrapDemoData fills an empty database with the sample venues, artists
// and shows. The whole set is written in one transaction, and a database
// holding any venue, artist or show is left alone.
func bootstrapDemoData(ctx context.Context, st demoStore, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	data := store.SeedData{
		Venues:  append([]models.Venue(nil), demoVenues...),
		Artists: append([]models.Artist(nil), demoArtists...),
		Shows:   make([]store.SeedShow, 0, len(demoShows)),
	}
	for _, s := range demoShows {
		start, err := time.ParseInLocation("2006-01-02 15:04:05", s.start, loc)
		if err != nil {
			return fmt.Errorf("parse demo show time %q: %w", s.start, err)
		}
		data.Shows = append(data.Shows, store.SeedShow{Venue: s.venue, Artist: s.artist, StartTime: start})
	}

	seeded, err := st.Seed(ctx, data)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	if !seeded {
		log.Debug().Msg("Database already has data, skipping demo seed")
		return nil
	}

	log.Info().
		Int("venues", len(data.Venues)).
		Int("artists", len(data.Artists)).
		Int("shows", len(data.Shows)).
		Msg("Seeded demo data")
	return nil
}
