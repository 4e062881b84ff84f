package admin

import (
	"context"

	"camperrent/internal/domain"
)

type blockedDateStore interface {
	Create(ctx context.Context, b *domain.BlockedDate) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.BlockedDate, error)
	Delete(ctx context.Context, id string) error
}

type seasonStore interface {
	Create(ctx context.Context, s *domain.Season) error
	GetByID(ctx context.Context, id string) (*domain.Season, error)
	List(ctx context.Context) ([]*domain.Season, error)
	Update(ctx context.Context, s *domain.Season) error
	Delete(ctx context.Context, id string) error
}

type vehicleReader interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}
