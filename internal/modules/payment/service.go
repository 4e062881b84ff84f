package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"camperrent/internal/config"
	"camperrent/internal/domain"
	"camperrent/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	payments  paymentRepo
	bookings  bookingReader
	reconcile reconciler
	customers customerCounter
	notifs    notifier
	signer    *Signer
	cfg       config.RedsysConfig
	loggerf   func(format string, args ...interface{})
	now       func() time.Time
}

// NewService wires the gateway integration. signer is nil when the merchant
// credentials are absent; initiation and webhook handling then refuse to run
// instead of producing signatures that can never validate.
func NewService(payments paymentRepo, bookings bookingReader, reconcile reconciler, customers customerCounter, notifs notifier, signer *Signer, cfg config.RedsysConfig, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments:  payments,
		bookings:  bookings,
		reconcile: reconcile,
		customers: customers,
		notifs:    notifs,
		signer:    signer,
		cfg:       cfg,
		loggerf:   loggerf,
		now:       time.Now,
	}
}

// Initiate creates a pending payment and the signed form the customer's
// browser posts to the gateway. Nothing is blocked yet; that happens when
// the gateway confirms.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	if s.signer == nil {
		return nil, ErrNotConfigured
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking is cancelled", ErrValidation)
	}

	remaining := b.TotalPrice - b.AmountPaid
	if req.Amount > remaining+0.005 {
		return nil, fmt.Errorf("%w: %.2f exceeds outstanding %.2f", ErrAmountMismatch, req.Amount, remaining)
	}

	paymentType := domain.PaymentType(req.PaymentType)
	if paymentType == "" {
		if math.Abs(req.Amount-remaining) < 0.005 {
			paymentType = domain.PaymentTypeFull
		} else {
			paymentType = domain.PaymentTypePartial
		}
	}
	transactionType := TransactionPurchase
	if paymentType == domain.PaymentTypeDeposit {
		transactionType = TransactionPreAuth
	}

	orderNumber := NewOrderNumber(s.now())
	description := fmt.Sprintf("Vehicle rental %s (%s to %s)", b.BookingNumber, b.PickupDate.Format("2006-01-02"), b.DropoffDate.Format("2006-01-02"))

	form, err := BuildGatewayForm(s.signer, s.cfg, orderNumber, req.Amount, description, b.CustomerEmail, transactionType)
	if err != nil {
		return nil, fmt.Errorf("build gateway form: %w", err)
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		OrderNumber:   orderNumber,
		Amount:        req.Amount,
		Status:        domain.PaymentPending,
		PaymentType:   paymentType,
		PaymentMethod: domain.PaymentMethodCard,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	s.loggerf("level=info msg=payment initiated order_number=%s booking_number=%s amount=%.2f type=%s", orderNumber, b.BookingNumber, req.Amount, paymentType)

	return &InitiateResponse{
		OrderNumber: orderNumber,
		GatewayURL:  s.cfg.GatewayURL,
		Form:        form,
	}, nil
}

// HandleNotification processes the gateway's server-to-server callback.
// The signature gates everything; after that the outcome is reconciled and
// side effects (emails, alerts, counters) run outside the transaction.
func (s *Service) HandleNotification(ctx context.Context, req NotificationRequest) (*repository.ReconcileResult, error) {
	if s.signer == nil {
		return nil, ErrNotConfigured
	}

	if err := s.signer.Verify(req.MerchantParameters, req.Signature); err != nil {
		s.loggerf("level=warn msg=notification signature rejected err=%v", err)
		return nil, ErrInvalidSignature
	}

	params, err := DecodeMerchantParams(req.MerchantParameters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	p, err := s.payments.GetByOrderNumber(ctx, params.Order)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, params.Order)
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	if params.Amount != "" {
		got, err := AmountFromMinorUnits(params.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if math.Abs(got-p.Amount) > 0.005 {
			s.loggerf("level=error msg=notification amount mismatch order_number=%s expected=%.2f got=%.2f", params.Order, p.Amount, got)
			return nil, ErrAmountMismatch
		}
	}

	res, err := s.reconcile.Reconcile(ctx, params.Order, repository.PaymentOutcome{
		Status:            StatusFromResponseCode(params.Response),
		ResponseCode:      params.Response,
		AuthorizationCode: params.AuthorisationCode,
		PaidAt:            s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile order %s: %w", params.Order, err)
	}

	s.afterReconcile(res)
	return res, nil
}

// Verify is the browser-return fallback for when the webhook never arrived.
// It funnels into the same reconciliation, so whichever path runs first
// wins and the other is a no-op.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, *repository.ReconcileResult, error) {
	if req.MerchantParams != "" && s.signer != nil {
		if err := s.signer.Verify(req.MerchantParams, req.Signature); err != nil {
			if !req.FromSuccessPage {
				s.loggerf("level=warn msg=verify signature rejected order_number=%s err=%v", req.OrderNumber, err)
				return nil, nil, ErrInvalidSignature
			}
			// Success-page redirects lose query encoding in some browsers;
			// the webhook remains the authoritative signed path.
			s.loggerf("level=warn msg=verify signature mismatch on success-page return order_number=%s err=%v", req.OrderNumber, err)
		}
	}

	p, err := s.payments.GetByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: order %s", ErrNotFound, req.OrderNumber)
		}
		return nil, nil, fmt.Errorf("load payment: %w", err)
	}

	res, err := s.reconcile.Reconcile(ctx, p.OrderNumber, repository.PaymentOutcome{
		Status:            StatusFromResponseCode(req.ResponseCode),
		ResponseCode:      req.ResponseCode,
		AuthorizationCode: req.AuthorizationCode,
		PaidAt:            s.now().UTC(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reconcile order %s: %w", req.OrderNumber, err)
	}

	s.afterReconcile(res)

	resp := &VerifyResponse{
		OrderNumber:   res.Payment.OrderNumber,
		PaymentStatus: string(res.Payment.Status),
	}
	if res.Booking != nil {
		resp.BookingID = res.Booking.ID
		resp.BookingStatus = string(res.Booking.Status)
		resp.AmountPaid = res.Booking.AmountPaid
	}
	if res.Conflict {
		resp.RequiresAction = "REFUND_OR_REASSIGN"
		resp.WinningBooking = res.WinningBookingID
	}
	return resp, res, nil
}

// afterReconcile runs the non-transactional side effects. Failures here are
// logged and swallowed; the money is already accounted for.
func (s *Service) afterReconcile(res *repository.ReconcileResult) {
	if res.AlreadyProcessed {
		s.loggerf("level=info msg=duplicate reconciliation ignored order_number=%s status=%s", res.Payment.OrderNumber, res.Payment.Status)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if res.Conflict {
		s.loggerf("level=error msg=payment conflict order_number=%s booking_id=%s winning_booking_id=%s", res.Payment.OrderNumber, res.Booking.ID, res.WinningBookingID)
		if err := s.notifs.PaymentConflict(ctx, res.Booking, res.Payment); err != nil {
			s.loggerf("level=error msg=conflict alert failed order_number=%s err=%v", res.Payment.OrderNumber, err)
		}
		return
	}

	if !res.Applied {
		s.loggerf("level=info msg=payment not applied order_number=%s status=%s response_code=%s", res.Payment.OrderNumber, res.Payment.Status, res.Payment.ResponseCode)
		return
	}

	for _, id := range res.CancelledBookingIDs {
		s.loggerf("level=info msg=overlapping pending booking auto-cancelled booking_id=%s order_number=%s", id, res.Payment.OrderNumber)
	}

	if res.Booking.CustomerID != "" {
		if err := s.customers.RecordPayment(ctx, res.Booking.CustomerID, res.Payment.Amount, res.FirstPayment); err != nil {
			s.loggerf("level=error msg=customer counters update failed customer_id=%s err=%v", res.Booking.CustomerID, err)
		}
	}
	if err := s.notifs.PaymentReceived(ctx, res.Booking, res.Payment, res.FirstPayment); err != nil {
		s.loggerf("level=error msg=payment email failed order_number=%s err=%v", res.Payment.OrderNumber, err)
	}
}
