package repository

import (
	"context"
	"errors"
	"strings"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertByEmail finds or creates the customer record for a checkout. Contact
// fields are refreshed with whatever the customer typed this time; counters
// are untouched here and only move when money is reconciled.
func (r *CustomerRepository) UpsertByEmail(ctx context.Context, c *domain.Customer) error {
	c.Email = normalizeEmail(c.Email)

	existing, err := r.GetByEmail(ctx, c.Email)
	if err == nil {
		c.ID = existing.ID
		c.TotalBookings = existing.TotalBookings
		c.TotalSpent = existing.TotalSpent
		return r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"name":    c.Name,
			"phone":   c.Phone,
			"city":    c.City,
			"country": c.Country,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	createErr := r.db.WithContext(ctx).Create(c).Error
	if createErr == nil {
		return nil
	}

	// Two first-time checkouts with the same email can race past the lookup.
	// Lose gracefully and adopt the winner's row.
	if isUniqueViolation(createErr) {
		existing, err := r.GetByEmail(ctx, c.Email)
		if err != nil {
			return err
		}
		c.ID = existing.ID
		c.TotalBookings = existing.TotalBookings
		c.TotalSpent = existing.TotalSpent
		return nil
	}
	return createErr
}

// RecordPayment bumps the lifetime counters after a reconciled payment.
// firstPayment guards the booking counter so split payments count once.
func (r *CustomerRepository) RecordPayment(ctx context.Context, customerID string, amount float64, firstPayment bool) error {
	updates := map[string]interface{}{
		"total_spent": gorm.Expr("total_spent + ?", amount),
	}
	if firstPayment {
		updates["total_bookings"] = gorm.Expr("total_bookings + 1")
	}
	return r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", customerID).Updates(updates).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc sqlite reports constraint violations by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
