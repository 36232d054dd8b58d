package models

// Venue represents a place that hosts shows
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description,omitempty"` // Stored as NULL unless SeekingTalent
	Genres             []string `json:"genres"`
}

// VenueSummary is the listing/search row for a venue
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city"`
	State            string `json:"state"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups venues located in the same city and state
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// GroupByLocation buckets venues sharing the same (state, city) pair.
// Input must already be ordered by state then city; only consecutive rows are merged.
func GroupByLocation(venues []VenueSummary) []Area {
	var areas []Area
	for _, v := range venues {
		if n := len(areas); n > 0 && areas[n-1].State == v.State && areas[n-1].City == v.City {
			areas[n-1].Venues = append(areas[n-1].Venues, v)
			continue
		}
		areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{v}})
	}
	return areas
}
