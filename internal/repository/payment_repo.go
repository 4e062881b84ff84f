package repository

import (
	"context"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&payments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return payments, nil
}
