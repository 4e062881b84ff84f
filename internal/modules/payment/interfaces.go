package payment

import (
	"context"

	"camperrent/internal/domain"
	"camperrent/internal/repository"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Payment, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type reconciler interface {
	Reconcile(ctx context.Context, orderNumber string, outcome repository.PaymentOutcome) (*repository.ReconcileResult, error)
}

type customerCounter interface {
	RecordPayment(ctx context.Context, customerID string, amount float64, firstPayment bool) error
}

type notifier interface {
	PaymentReceived(ctx context.Context, b *domain.Booking, p *domain.Payment, firstPayment bool) error
	PaymentConflict(ctx context.Context, b *domain.Booking, p *domain.Payment) error
}
