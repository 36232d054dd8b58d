package venues

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue *models.Venue) (int64, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue *models.Venue) error
	DeleteVenue(ctx context.Context, id int64) error
	ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	SearchVenues(ctx context.Context, keyword string, now time.Time) ([]models.VenueSummary, error)
	ListShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowWithDetails, error)
}

// Detail is a venue along with its shows split around the current instant
type Detail struct {
	*models.Venue
	UpcomingShows []models.ShowWithDetails
	PastShows     []models.ShowWithDetails
}

// Service coordinates venue operations
type Service interface {
	Create(ctx context.Context, venue *models.Venue) (int64, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Update(ctx context.Context, id int64, venue *models.Venue) error
	Delete(ctx context.Context, id int64) error
	ListByLocation(ctx context.Context) ([]models.Area, error)
	Search(ctx context.Context, keyword string) ([]models.VenueSummary, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a venues Service. A nil clock defaults to time.Now.
func New(store Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Detail(ctx context.Context, id int64) (*Detail, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.store.ListShowsByVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	upcoming, past := models.Partition(shows, s.now())
	return &Detail{Venue: venue, UpcomingShows: upcoming, PastShows: past}, nil
}

func (s *service) Update(ctx context.Context, id int64, venue *models.Venue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateVenue(ctx, id, venue)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}

func (s *service) ListByLocation(ctx context.Context) ([]models.Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summaries, err := s.store.ListVenueSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return models.GroupByLocation(summaries), nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]models.VenueSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchVenues(ctx, keyword, s.now())
}
