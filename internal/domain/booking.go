package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// BookingPaymentStatus tracks how much of the booking total has been collected.
type BookingPaymentStatus string

const (
	BookingUnpaid   BookingPaymentStatus = "pending"
	BookingPartial  BookingPaymentStatus = "partial"
	BookingPaid     BookingPaymentStatus = "paid"
	BookingRefunded BookingPaymentStatus = "refunded"
)

type Booking struct {
	ID                string               `json:"id"`
	BookingNumber     string               `json:"booking_number"`
	VehicleID         string               `json:"vehicle_id" validate:"required"`
	CustomerID        string               `json:"customer_id,omitempty"`
	PickupLocationID  string               `json:"pickup_location_id"`
	DropoffLocationID string               `json:"dropoff_location_id"`
	PickupDate        time.Time            `json:"pickup_date" validate:"required"`
	PickupTime        string               `json:"pickup_time"`
	DropoffDate       time.Time            `json:"dropoff_date" validate:"required"`
	DropoffTime       string               `json:"dropoff_time"`
	Days              int                  `json:"days"`
	BasePrice         float64              `json:"base_price"`
	LocationFee       float64              `json:"location_fee"`
	Discount          float64              `json:"discount"`
	TotalPrice        float64              `json:"total_price" validate:"gte=0"`
	AmountPaid        float64              `json:"amount_paid"`
	Status            BookingStatus        `json:"status"`
	PaymentStatus     BookingPaymentStatus `json:"payment_status"`
	CustomerName      string               `json:"customer_name"`
	CustomerEmail     string               `json:"customer_email" validate:"required,email"`
	CustomerPhone     string               `json:"customer_phone,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	AdminNotes        string               `json:"admin_notes,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	CancelledAt       *time.Time           `json:"cancelled_at,omitempty"`
}

// Blocking reports whether this booking counts against availability.
// Only bookings that have received at least a partial payment block the
// vehicle; a pending/pending booking is provisional until money has moved.
func (b *Booking) Blocking() bool {
	if b.Status == BookingCancelled {
		return false
	}
	return b.PaymentStatus == BookingPartial || b.PaymentStatus == BookingPaid
}

// Overlaps uses the closed-interval test shared by availability search and
// the reconciliation conflict check.
func (b *Booking) Overlaps(pickup, dropoff time.Time) bool {
	return !b.PickupDate.After(dropoff) && !b.DropoffDate.Before(pickup)
}

// DerivePaymentStatus maps the collected amount to the booking payment state.
func DerivePaymentStatus(amountPaid, totalPrice float64) BookingPaymentStatus {
	switch {
	case amountPaid >= totalPrice:
		return BookingPaid
	case amountPaid > 0:
		return BookingPartial
	default:
		return BookingUnpaid
	}
}
