package booking

import (
	"context"
	"time"

	"camperrent/internal/domain"
)

type bookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	HasBlockingOverlap(ctx context.Context, vehicleID string, pickup, dropoff time.Time, excludeID string) (bool, error)
}

type customerStore interface {
	UpsertByEmail(ctx context.Context, c *domain.Customer) error
}

type vehicleReader interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}

type seasonSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Season, error)
}

type locationReader interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

type notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
}
