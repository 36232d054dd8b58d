// Package forms decodes and validates the HTML form submissions for venues,
// artists and shows.
package forms

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"fyyur/internal/models"
)

const (
	msgRequired = "This field is required."
	msgURL      = "Invalid URL."
	msgPhone    = "Invalid phone number, use the format xxx-xxx-xxxx."
	msgChoice   = "Not a valid choice."
	checked     = "y"
)

var (
	decoder = newDecoder()
	phoneRe = regexp.MustCompile(`^[0-9]{3}-?[0-9]{3}-?[0-9]{4}$`)

	startTimeLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Errors maps a form field name to its validation message.
type Errors map[string]string

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e[field] = msgRequired
		return false
	}
	return true
}

func (e Errors) optionalURL(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		e[field] = msgURL
	}
}

func (e Errors) phone(field, value string) {
	if e.required(field, value) && !phoneRe.MatchString(strings.TrimSpace(value)) {
		e[field] = msgPhone
	}
}

func (e Errors) state(field, value string) {
	if !e.required(field, value) {
		return
	}
	if _, ok := stateSet[strings.TrimSpace(value)]; !ok {
		e[field] = msgChoice
	}
}

func (e Errors) genres(field string, values []string) {
	if len(values) == 0 {
		e[field] = msgRequired
		return
	}
	for _, g := range values {
		if _, ok := genreSet[g]; !ok {
			e[field] = fmt.Sprintf("'%s' is not a valid choice for this field.", g)
			return
		}
	}
}

// VenueForm mirrors the venue create/edit form.
type VenueForm struct {
	Name               string   `schema:"name"`
	City               string   `schema:"city"`
	State              string   `schema:"state"`
	Address            string   `schema:"address"`
	Phone              string   `schema:"phone"`
	Genres             []string `schema:"genres"`
	FacebookLink       string   `schema:"facebook_link"`
	ImageLink          string   `schema:"image_link"`
	WebsiteLink        string   `schema:"website_link"`
	SeekingTalent      string   `schema:"seeking_talent"`
	SeekingDescription string   `schema:"seeking_description"`
}

// DecodeVenue reads a VenueForm from submitted values.
func DecodeVenue(values url.Values) (VenueForm, error) {
	var f VenueForm
	if err := decoder.Decode(&f, values); err != nil {
		return VenueForm{}, fmt.Errorf("decode venue form: %w", err)
	}
	return f, nil
}

// VenueFormFrom pre-fills the edit form from a stored venue.
func VenueFormFrom(v *models.Venue) VenueForm {
	f := VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingDescription: v.SeekingDescription,
	}
	if v.SeekingTalent {
		f.SeekingTalent = checked
	}
	return f
}

// Seeking reports whether the seeking_talent box was ticked.
func (f VenueForm) Seeking() bool {
	return f.SeekingTalent != ""
}

// Validate returns the per-field errors, empty when the form is acceptable.
func (f VenueForm) Validate() Errors {
	errs := Errors{}
	errs.required("name", f.Name)
	errs.required("city", f.City)
	errs.state("state", f.State)
	errs.required("address", f.Address)
	errs.phone("phone", f.Phone)
	errs.genres("genres", f.Genres)
	errs.optionalURL("facebook_link", f.FacebookLink)
	errs.optionalURL("image_link", f.ImageLink)
	errs.optionalURL("website_link", f.WebsiteLink)
	if f.Seeking() {
		errs.required("seeking_description", f.SeekingDescription)
	}
	return errs
}

// Venue converts the form into a model. Every field is taken from the form.
func (f VenueForm) Venue() *models.Venue {
	return &models.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		SeekingTalent:      f.Seeking(),
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
		Genres:             f.Genres,
	}
}

// ArtistForm mirrors the artist create/edit form.
type ArtistForm struct {
	Name               string   `schema:"name"`
	City               string   `schema:"city"`
	State              string   `schema:"state"`
	Phone              string   `schema:"phone"`
	Genres             []string `schema:"genres"`
	FacebookLink       string   `schema:"facebook_link"`
	ImageLink          string   `schema:"image_link"`
	WebsiteLink        string   `schema:"website_link"`
	SeekingVenue       string   `schema:"seeking_venue"`
	SeekingDescription string   `schema:"seeking_description"`
}

// DecodeArtist reads an ArtistForm from submitted values.
func DecodeArtist(values url.Values) (ArtistForm, error) {
	var f ArtistForm
	if err := decoder.Decode(&f, values); err != nil {
		return ArtistForm{}, fmt.Errorf("decode artist form: %w", err)
	}
	return f, nil
}

// ArtistFormFrom pre-fills the edit form from a stored artist.
func ArtistFormFrom(a *models.Artist) ArtistForm {
	f := ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingDescription: a.SeekingDescription,
	}
	if a.SeekingVenue {
		f.SeekingVenue = checked
	}
	return f
}

// Seeking reports whether the seeking_venue box was ticked.
func (f ArtistForm) Seeking() bool {
	return f.SeekingVenue != ""
}

// Validate returns the per-field errors, empty when the form is acceptable.
func (f ArtistForm) Validate() Errors {
	errs := Errors{}
	errs.required("name", f.Name)
	errs.required("city", f.City)
	errs.state("state", f.State)
	errs.phone("phone", f.Phone)
	errs.genres("genres", f.Genres)
	errs.optionalURL("facebook_link", f.FacebookLink)
	errs.optionalURL("image_link", f.ImageLink)
	errs.optionalURL("website_link", f.WebsiteLink)
	if f.Seeking() {
		errs.required("seeking_description", f.SeekingDescription)
	}
	return errs
}

// Artist converts the form into a model. Every field is taken from the form.
func (f ArtistForm) Artist() *models.Artist {
	return &models.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Phone:              strings.TrimSpace(f.Phone),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		SeekingVenue:       f.Seeking(),
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
		Genres:             f.Genres,
	}
}

// ShowForm mirrors the show booking form.
type ShowForm struct {
	ArtistID  string `schema:"artist_id"`
	VenueID   string `schema:"venue_id"`
	StartTime string `schema:"start_time"`
}

// DecodeShow reads a ShowForm from submitted values.
func DecodeShow(values url.Values) (ShowForm, error) {
	var f ShowForm
	if err := decoder.Decode(&f, values); err != nil {
		return ShowForm{}, fmt.Errorf("decode show form: %w", err)
	}
	return f, nil
}

// Parse validates the form and builds the show. Start times without a zone
// are read in loc.
func (f ShowForm) Parse(loc *time.Location) (*models.Show, Errors) {
	errs := Errors{}
	show := &models.Show{}

	if errs.required("artist_id", f.ArtistID) {
		id, err := strconv.ParseInt(strings.TrimSpace(f.ArtistID), 10, 64)
		if err != nil || id <= 0 {
			errs["artist_id"] = "Not a valid integer value."
		}
		show.ArtistID = id
	}
	if errs.required("venue_id", f.VenueID) {
		id, err := strconv.ParseInt(strings.TrimSpace(f.VenueID), 10, 64)
		if err != nil || id <= 0 {
			errs["venue_id"] = "Not a valid integer value."
		}
		show.VenueID = id
	}
	if errs.required("start_time", f.StartTime) {
		start, ok := parseStartTime(strings.TrimSpace(f.StartTime), loc)
		if !ok {
			errs["start_time"] = "Not a valid datetime value."
		}
		show.StartTime = start
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return show, errs
}

func parseStartTime(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
