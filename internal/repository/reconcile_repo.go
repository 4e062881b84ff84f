package repository

import (
	"context"
	"fmt"
	"time"

	"camperrent/internal/domain"

	"gorm.io/gorm"
)

// ReconcileRepository applies a gateway payment outcome to the booking graph
// in one transaction. It is the only writer that moves a payment out of
// pending, so the pending check doubles as the idempotency gate for webhook
// replays and the notification/verify race.
type ReconcileRepository struct {
	db *gorm.DB
}

func NewReconcileRepository(db *gorm.DB) *ReconcileRepository {
	return &ReconcileRepository{db: db}
}

// PaymentOutcome is the gateway's verdict after response-code mapping.
type PaymentOutcome struct {
	Status            domain.PaymentStatus
	ResponseCode      string
	AuthorizationCode string
	PaidAt            time.Time
}

type ReconcileResult struct {
	Payment *domain.Payment
	Booking *domain.Booking

	// AlreadyProcessed means the payment had left pending before this call;
	// nothing was changed.
	AlreadyProcessed bool

	// Conflict means the money arrived for dates another paid booking now
	// holds. The payment is recorded but the booking stays unconfirmed.
	Conflict bool

	// WinningBookingID is the booking that holds the vehicle when Conflict
	// is set.
	WinningBookingID string

	// Applied means the amount was added to the booking and the booking is
	// confirmed.
	Applied bool

	// FirstPayment is true when the booking had no money on it before this
	// payment. Drives the choice of customer email.
	FirstPayment bool

	// CancelledBookingIDs are pending unpaid bookings on the same vehicle
	// and dates that lost the race and were auto-cancelled.
	CancelledBookingIDs []string
}

func (r *ReconcileRepository) Reconcile(ctx context.Context, orderNumber string, outcome PaymentOutcome) (*ReconcileResult, error) {
	res := &ReconcileResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := lockForUpdate(tx).Where("order_number = ?", orderNumber).First(&p).Error; err != nil {
			return err
		}

		if p.Status != domain.PaymentPending {
			res.AlreadyProcessed = true
			res.Payment = &p
			return loadBooking(tx, p.BookingID, res)
		}

		if outcome.Status != domain.PaymentCompleted {
			// Declined or user-cancelled. Record the verdict, leave the
			// booking alone.
			updates := map[string]interface{}{
				"status":        string(outcome.Status),
				"response_code": outcome.ResponseCode,
			}
			if err := tx.Model(&domain.Payment{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
				return err
			}
			p.Status = outcome.Status
			p.ResponseCode = outcome.ResponseCode
			res.Payment = &p
			return loadBooking(tx, p.BookingID, res)
		}

		var bm bookingModel
		if err := lockForUpdate(tx).Where("id = ?", p.BookingID).First(&bm).Error; err != nil {
			return err
		}

		// Serialize competing payments for the same vehicle on the vehicle
		// row, so two webhooks for different bookings cannot both pass the
		// conflict check.
		var v domain.Vehicle
		if err := lockForUpdate(tx).Where("id = ?", bm.VehicleID).First(&v).Error; err != nil {
			return err
		}

		winnerID, err := findBlockingOverlapTx(tx, bm.VehicleID, bm.PickupDate, bm.DropoffDate, bm.ID)
		if err != nil {
			return err
		}

		if winnerID != "" {
			note := fmt.Sprintf("CONFLICT: payment %s received for booking %s but the vehicle is already held for these dates. Refund or reassign.", orderNumber, bm.BookingNumber)
			updates := map[string]interface{}{
				"status":             string(domain.PaymentCompleted),
				"response_code":      outcome.ResponseCode,
				"authorization_code": outcome.AuthorizationCode,
				"paid_at":            outcome.PaidAt,
				"notes":              appendNote(p.Notes, note),
			}
			if err := tx.Model(&domain.Payment{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
				return err
			}
			p.Status = domain.PaymentCompleted
			p.ResponseCode = outcome.ResponseCode
			p.AuthorizationCode = outcome.AuthorizationCode
			p.Notes = appendNote(p.Notes, note)
			res.Payment = &p
			res.Booking = toDomainBooking(bm)
			res.Conflict = true
			res.WinningBookingID = winnerID
			return nil
		}

		res.FirstPayment = bm.AmountPaid == 0

		newPaid := bm.AmountPaid + p.Amount
		if err := tx.Model(&bookingModel{}).Where("id = ?", bm.ID).Updates(map[string]interface{}{
			"amount_paid":    newPaid,
			"payment_status": string(domain.DerivePaymentStatus(newPaid, bm.TotalPrice)),
			"status":         string(domain.BookingConfirmed),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Payment{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"status":             string(domain.PaymentCompleted),
			"response_code":      outcome.ResponseCode,
			"authorization_code": outcome.AuthorizationCode,
			"paid_at":            outcome.PaidAt,
		}).Error; err != nil {
			return err
		}

		// The confirmed booking takes the vehicle; unpaid pending bookings
		// on the same dates lost the race.
		losers, err := findPendingUnpaidOverlapping(tx, bm.VehicleID, bm.PickupDate, bm.DropoffDate, bm.ID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, loser := range losers {
			note := fmt.Sprintf("Auto-cancelled: vehicle taken by booking %s for overlapping dates.", bm.BookingNumber)
			if err := cancelBookingWithNote(tx, loser.ID, note, now); err != nil {
				return err
			}
			res.CancelledBookingIDs = append(res.CancelledBookingIDs, loser.ID)
		}

		bm.AmountPaid = newPaid
		bm.PaymentStatus = string(domain.DerivePaymentStatus(newPaid, bm.TotalPrice))
		bm.Status = string(domain.BookingConfirmed)
		p.Status = domain.PaymentCompleted
		p.ResponseCode = outcome.ResponseCode
		p.AuthorizationCode = outcome.AuthorizationCode
		paidAt := outcome.PaidAt
		p.PaidAt = &paidAt

		res.Payment = &p
		res.Booking = toDomainBooking(bm)
		res.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func loadBooking(tx *gorm.DB, bookingID string, res *ReconcileResult) error {
	if bookingID == "" {
		return nil
	}
	var bm bookingModel
	if err := tx.Where("id = ?", bookingID).First(&bm).Error; err != nil {
		return err
	}
	res.Booking = toDomainBooking(bm)
	return nil
}

// findBlockingOverlapTx returns the id of a money-backed booking already
// holding the vehicle over the range, or "" when there is none.
func findBlockingOverlapTx(tx *gorm.DB, vehicleID string, pickup, dropoff time.Time, excludeID string) (string, error) {
	var ids []string
	err := tx.Model(&bookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("id <> ?", excludeID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("payment_status IN ?", []string{string(domain.BookingPartial), string(domain.BookingPaid)}).
		Where("pickup_date <= ? AND dropoff_date >= ?", dropoff, pickup).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func findPendingUnpaidOverlapping(tx *gorm.DB, vehicleID string, pickup, dropoff time.Time, excludeID string) ([]bookingModel, error) {
	var models []bookingModel
	err := tx.
		Where("vehicle_id = ?", vehicleID).
		Where("id <> ?", excludeID).
		Where("status = ?", string(domain.BookingPending)).
		Where("payment_status = ?", string(domain.BookingUnpaid)).
		Where("pickup_date <= ? AND dropoff_date >= ?", dropoff, pickup).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
