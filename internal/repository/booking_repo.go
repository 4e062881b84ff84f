package repository

import (
	"context"
	"time"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	BookingNumber     string     `gorm:"column:booking_number;uniqueIndex"`
	VehicleID         string     `gorm:"column:vehicle_id;index"`
	CustomerID        *string    `gorm:"column:customer_id"`
	PickupLocationID  *string    `gorm:"column:pickup_location_id"`
	DropoffLocationID *string    `gorm:"column:dropoff_location_id"`
	PickupDate        time.Time  `gorm:"column:pickup_date"`
	PickupTime        string     `gorm:"column:pickup_time"`
	DropoffDate       time.Time  `gorm:"column:dropoff_date"`
	DropoffTime       string     `gorm:"column:dropoff_time"`
	Days              int        `gorm:"column:days"`
	BasePrice         float64    `gorm:"column:base_price"`
	LocationFee       float64    `gorm:"column:location_fee"`
	Discount          float64    `gorm:"column:discount"`
	TotalPrice        float64    `gorm:"column:total_price"`
	AmountPaid        float64    `gorm:"column:amount_paid"`
	Status            string     `gorm:"column:status;index"`
	PaymentStatus     string     `gorm:"column:payment_status;index"`
	CustomerName      string     `gorm:"column:customer_name"`
	CustomerEmail     string     `gorm:"column:customer_email"`
	CustomerPhone     string     `gorm:"column:customer_phone"`
	Notes             *string    `gorm:"column:notes;type:text"`
	AdminNotes        *string    `gorm:"column:admin_notes;type:text"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	CancelledAt       *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		BookingNumber: m.BookingNumber,
		VehicleID:     m.VehicleID,
		PickupDate:    m.PickupDate,
		PickupTime:    m.PickupTime,
		DropoffDate:   m.DropoffDate,
		DropoffTime:   m.DropoffTime,
		Days:          m.Days,
		BasePrice:     m.BasePrice,
		LocationFee:   m.LocationFee,
		Discount:      m.Discount,
		TotalPrice:    m.TotalPrice,
		AmountPaid:    m.AmountPaid,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.BookingPaymentStatus(m.PaymentStatus),
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CancelledAt:   m.CancelledAt,
	}
	if m.CustomerID != nil {
		b.CustomerID = *m.CustomerID
	}
	if m.PickupLocationID != nil {
		b.PickupLocationID = *m.PickupLocationID
	}
	if m.DropoffLocationID != nil {
		b.DropoffLocationID = *m.DropoffLocationID
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	if m.AdminNotes != nil {
		b.AdminNotes = *m.AdminNotes
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		VehicleID:     b.VehicleID,
		PickupDate:    b.PickupDate,
		PickupTime:    b.PickupTime,
		DropoffDate:   b.DropoffDate,
		DropoffTime:   b.DropoffTime,
		Days:          b.Days,
		BasePrice:     b.BasePrice,
		LocationFee:   b.LocationFee,
		Discount:      b.Discount,
		TotalPrice:    b.TotalPrice,
		AmountPaid:    b.AmountPaid,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CancelledAt:   b.CancelledAt,
	}
	m.CustomerID = optional(b.CustomerID)
	m.PickupLocationID = optional(b.PickupLocationID)
	m.DropoffLocationID = optional(b.DropoffLocationID)
	m.Notes = optional(b.Notes)
	m.AdminNotes = optional(b.AdminNotes)
	return m
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindBlockingVehicleIDs returns the distinct vehicles that already carry a
// money-backed booking overlapping [pickup, dropoff]. Cancelled bookings and
// bookings nobody has paid for never block.
func (r *BookingRepository) FindBlockingVehicleIDs(ctx context.Context, pickup, dropoff time.Time) ([]string, error) {
	var ids []string
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Distinct("vehicle_id").
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("payment_status IN ?", []string{string(domain.BookingPartial), string(domain.BookingPaid)}).
		Where("pickup_date <= ? AND dropoff_date >= ?", dropoff, pickup).
		Pluck("vehicle_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

// HasBlockingOverlap reports whether any money-backed booking other than
// excludeID holds the vehicle over [pickup, dropoff].
func (r *BookingRepository) HasBlockingOverlap(ctx context.Context, vehicleID string, pickup, dropoff time.Time, excludeID string) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("payment_status IN ?", []string{string(domain.BookingPartial), string(domain.BookingPaid)}).
		Where("pickup_date <= ? AND dropoff_date >= ?", dropoff, pickup)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListExpiredPending returns pending bookings with no money collected whose
// creation time is before the cutoff. The expiry job cancels them.
func (r *BookingRepository) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingPending)).
		Where("payment_status = ?", string(domain.BookingUnpaid)).
		Where("created_at < ?", cutoff).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]*domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainBooking(m))
	}
	return out, nil
}

// CancelWithNote cancels a booking and appends the note to admin_notes.
// It only touches bookings that are not already cancelled.
func (r *BookingRepository) CancelWithNote(ctx context.Context, id, note string, at time.Time) error {
	return cancelBookingWithNote(r.db.WithContext(ctx), id, note, at)
}

func cancelBookingWithNote(tx *gorm.DB, id, note string, at time.Time) error {
	var m bookingModel
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		return err
	}
	if m.Status == string(domain.BookingCancelled) {
		return nil
	}
	notes := note
	if m.AdminNotes != nil && *m.AdminNotes != "" {
		notes = *m.AdminNotes + "\n" + note
	}
	return tx.Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       string(domain.BookingCancelled),
		"admin_notes":  notes,
		"cancelled_at": at,
	}).Error
}
