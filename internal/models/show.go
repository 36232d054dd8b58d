package models

import "time"

// Show books one artist at one venue at a point in time
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowWithDetails includes display fields of both sides of the booking
type ShowWithDetails struct {
	Show
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
}

// Upcoming reports whether the show starts strictly after now.
func (s Show) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

// Partition splits shows into upcoming and past relative to now, keeping input order.
// A show starting exactly at now is past.
func Partition(shows []ShowWithDetails, now time.Time) (upcoming, past []ShowWithDetails) {
	for _, s := range shows {
		if s.Upcoming(now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return upcoming, past
}
