package shows

import (
	"context"

	"fyyur/internal/models"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show *models.Show) (int64, error)
	ListShows(ctx context.Context) ([]models.ShowWithDetails, error)
}

// Service coordinates show bookings
type Service interface {
	Create(ctx context.Context, show *models.Show) (int64, error)
	List(ctx context.Context) ([]models.ShowWithDetails, error)
}

type service struct {
	store Store
}

// New constructs a shows Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, show *models.Show) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateShow(ctx, show)
}

func (s *service) List(ctx context.Context) ([]models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx)
}
