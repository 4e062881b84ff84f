package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFull    PaymentType = "full"
	PaymentTypePartial PaymentType = "partial"
	PaymentTypeRefund  PaymentType = "refund"
)

type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodUnknown  PaymentMethod = "unknown"
)

// ParsePaymentMethod normalizes free-text method values coming from older
// records into the closed enum.
func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(s) {
	case PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCash:
		return PaymentMethod(s)
	}
	return PaymentMethodUnknown
}

// Payment is one attempt to collect money for a booking. OrderNumber is the
// gateway order id and doubles as the idempotency key: a given order number
// maps to at most one payment, and pending -> completed happens at most once.
type Payment struct {
	ID                string        `json:"id" gorm:"column:id;primaryKey"`
	BookingID         string        `json:"booking_id" gorm:"column:booking_id"`
	OrderNumber       string        `json:"order_number" gorm:"column:order_number;uniqueIndex"`
	Amount            float64       `json:"amount" gorm:"column:amount"`
	Status            PaymentStatus `json:"status" gorm:"column:status"`
	PaymentType       PaymentType   `json:"payment_type" gorm:"column:payment_type"`
	PaymentMethod     PaymentMethod `json:"payment_method" gorm:"column:payment_method"`
	ResponseCode      string        `json:"response_code,omitempty" gorm:"column:response_code"`
	AuthorizationCode string        `json:"authorization_code,omitempty" gorm:"column:authorization_code"`
	Notes             string        `json:"notes,omitempty" gorm:"column:notes;type:text"`
	CreatedAt         time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time     `json:"updated_at" gorm:"column:updated_at"`
	PaidAt            *time.Time    `json:"paid_at,omitempty" gorm:"column:paid_at"`
}

func (Payment) TableName() string { return "payments" }
