package payment

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrNotFound         = errors.New("payment not found")
	ErrNotConfigured    = errors.New("gateway credentials are not configured")

	// ErrConflict means the money arrived for dates another paid booking
	// now holds. The operator has to refund or reassign by hand.
	ErrConflict = errors.New("payment conflicts with an existing booking")
)
