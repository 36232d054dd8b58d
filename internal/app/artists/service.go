package artists

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist *models.Artist) (int64, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist) error
	DeleteArtist(ctx context.Context, id int64) error
	ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	SearchArtists(ctx context.Context, keyword string, now time.Time) ([]models.ArtistSummary, error)
	ListShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowWithDetails, error)
}

// Detail is an artist along with its shows split around the current instant
type Detail struct {
	*models.Artist
	UpcomingShows []models.ShowWithDetails
	PastShows     []models.ShowWithDetails
}

// Service provides artist-centric operations.
type Service interface {
	Create(ctx context.Context, artist *models.Artist) (int64, error)
	Get(ctx context.Context, id int64) (*models.Artist, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Update(ctx context.Context, id int64, artist *models.Artist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Search(ctx context.Context, keyword string) ([]models.ArtistSummary, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs an artist Service. A nil clock defaults to time.Now.
func New(store Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}
}

func (s *service) Create(ctx context.Context, artist *models.Artist) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Detail(ctx context.Context, id int64) (*Detail, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.store.ListShowsByArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	upcoming, past := models.Partition(shows, s.now())
	return &Detail{Artist: artist, UpcomingShows: upcoming, PastShows: past}, nil
}

func (s *service) Update(ctx context.Context, id int64, artist *models.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtistSummaries(ctx, s.now())
}

func (s *service) Search(ctx context.Context, keyword string) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchArtists(ctx, keyword, s.now())
}
