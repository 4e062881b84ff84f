package availability

import (
	"context"
	"time"

	"camperrent/internal/domain"
)

type vehicleSource interface {
	ListRentable(ctx context.Context) ([]*domain.Vehicle, error)
}

type bookingBlocks interface {
	FindBlockingVehicleIDs(ctx context.Context, pickup, dropoff time.Time) ([]string, error)
}

type adminBlocks interface {
	FindBlockedVehicleIDs(ctx context.Context, from, to time.Time) ([]string, error)
}

type seasonSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Season, error)
}

type locationSource interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}
