package payment

import (
	"context"
	"testing"
	"time"

	"camperrent/internal/domain"
	"camperrent/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil && p.ID == "" {
		p.ID = "pay-1"
	}
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Payment, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockBookingReader struct{ mock.Mock }

func (m *MockBookingReader) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Reconcile(ctx context.Context, orderNumber string, outcome repository.PaymentOutcome) (*repository.ReconcileResult, error) {
	args := m.Called(ctx, orderNumber, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReconcileResult), args.Error(1)
}

type MockCustomerCounter struct{ mock.Mock }

func (m *MockCustomerCounter) RecordPayment(ctx context.Context, customerID string, amount float64, firstPayment bool) error {
	args := m.Called(ctx, customerID, amount, firstPayment)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) PaymentReceived(ctx context.Context, b *domain.Booking, p *domain.Payment, firstPayment bool) error {
	args := m.Called(ctx, b, p, firstPayment)
	return args.Error(0)
}

func (m *MockNotifier) PaymentConflict(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	args := m.Called(ctx, b, p)
	return args.Error(0)
}

type fixture struct {
	payments  *MockPaymentRepo
	bookings  *MockBookingReader
	reconcile *MockReconciler
	customers *MockCustomerCounter
	notifs    *MockNotifier
	svc       *Service
}

func newFixture(t *testing.T, configured bool) *fixture {
	t.Helper()
	f := &fixture{
		payments:  new(MockPaymentRepo),
		bookings:  new(MockBookingReader),
		reconcile: new(MockReconciler),
		customers: new(MockCustomerCounter),
		notifs:    new(MockNotifier),
	}
	var signer *Signer
	if configured {
		var err error
		signer, err = NewSigner(testSecretKey)
		require.NoError(t, err)
	}
	f.svc = NewService(f.payments, f.bookings, f.reconcile, f.customers, f.notifs, signer, testGatewayConfig(), nil)
	return f
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "bk-1",
		BookingNumber: "BK-260828-AAAAAA",
		VehicleID:     "v1",
		CustomerID:    "cust-1",
		CustomerEmail: "ana@example.com",
		PickupDate:    time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC),
		DropoffDate:   time.Date(2026, time.September, 13, 10, 0, 0, 0, time.UTC),
		TotalPrice:    285,
		Status:        domain.BookingPending,
		PaymentStatus: domain.BookingUnpaid,
	}
}

func TestInitiate_CreatesPendingPayment(t *testing.T) {
	f := newFixture(t, true)
	f.bookings.On("GetByID", mock.Anything, "bk-1").Return(pendingBooking(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.Initiate(context.Background(), InitiateRequest{BookingID: "bk-1", Amount: 285})
	require.NoError(t, err)

	assert.Len(t, res.OrderNumber, 12)
	assert.Equal(t, "https://sis-t.redsys.es:25443/sis/realizarPago", res.GatewayURL)
	assert.Equal(t, SignatureVersion, res.Form.SignatureVersion)

	created := f.payments.Calls[0].Arguments.Get(1).(*domain.Payment)
	assert.Equal(t, domain.PaymentPending, created.Status)
	assert.Equal(t, domain.PaymentTypeFull, created.PaymentType)
	assert.Equal(t, domain.PaymentMethodCard, created.PaymentMethod)
	assert.Equal(t, res.OrderNumber, created.OrderNumber)
}

func TestInitiate_PartialAmountType(t *testing.T) {
	f := newFixture(t, true)
	f.bookings.On("GetByID", mock.Anything, "bk-1").Return(pendingBooking(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Initiate(context.Background(), InitiateRequest{BookingID: "bk-1", Amount: 100})
	require.NoError(t, err)

	created := f.payments.Calls[0].Arguments.Get(1).(*domain.Payment)
	assert.Equal(t, domain.PaymentTypePartial, created.PaymentType)
}

func TestInitiate_RejectsOverpayment(t *testing.T) {
	f := newFixture(t, true)
	b := pendingBooking()
	b.AmountPaid = 200
	f.bookings.On("GetByID", mock.Anything, "bk-1").Return(b, nil)

	_, err := f.svc.Initiate(context.Background(), InitiateRequest{BookingID: "bk-1", Amount: 100})
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestInitiate_NotConfigured(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Initiate(context.Background(), InitiateRequest{BookingID: "bk-1", Amount: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInitiate_CancelledBooking(t *testing.T) {
	f := newFixture(t, true)
	b := pendingBooking()
	b.Status = domain.BookingCancelled
	f.bookings.On("GetByID", mock.Anything, "bk-1").Return(b, nil)

	_, err := f.svc.Initiate(context.Background(), InitiateRequest{BookingID: "bk-1", Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)
}

func signedNotification(t *testing.T, params map[string]string) NotificationRequest {
	t.Helper()
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, params)
	sig, err := signer.Sign(params["Ds_Order"], paramsB64)
	require.NoError(t, err)
	return NotificationRequest{
		SignatureVersion:   SignatureVersion,
		MerchantParameters: paramsB64,
		Signature:          sig,
	}
}

func TestHandleNotification_RejectsBadSignature(t *testing.T) {
	f := newFixture(t, true)

	req := signedNotification(t, map[string]string{"Ds_Order": "260828150405", "Ds_Response": "0000"})
	req.Signature = "AAAA" + req.Signature[4:]

	_, err := f.svc.HandleNotification(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	f.reconcile.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_AppliesPayment(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", BookingID: "bk-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentPending}
	b := pendingBooking()
	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.BookingPaid
	b.AmountPaid = 285

	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(p, nil)
	f.reconcile.On("Reconcile", mock.Anything, "260828150405", mock.MatchedBy(func(o repository.PaymentOutcome) bool {
		return o.Status == domain.PaymentCompleted && o.ResponseCode == "0000" && o.AuthorizationCode == "123456"
	})).Return(&repository.ReconcileResult{
		Payment:      p,
		Booking:      b,
		Applied:      true,
		FirstPayment: true,
	}, nil)
	f.customers.On("RecordPayment", mock.Anything, "cust-1", 285.0, true).Return(nil)
	f.notifs.On("PaymentReceived", mock.Anything, b, p, true).Return(nil)

	res, err := f.svc.HandleNotification(context.Background(), signedNotification(t, map[string]string{
		"Ds_Order":             "260828150405",
		"Ds_Amount":            "28500",
		"Ds_Response":          "0000",
		"Ds_AuthorisationCode": "123456",
	}))
	require.NoError(t, err)
	assert.True(t, res.Applied)

	f.customers.AssertExpectations(t)
	f.notifs.AssertExpectations(t)
}

func TestHandleNotification_AmountMismatch(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentPending}
	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(p, nil)

	_, err := f.svc.HandleNotification(context.Background(), signedNotification(t, map[string]string{
		"Ds_Order":    "260828150405",
		"Ds_Amount":   "100",
		"Ds_Response": "0000",
	}))
	assert.ErrorIs(t, err, ErrAmountMismatch)
	f.reconcile.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	f := newFixture(t, true)
	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.HandleNotification(context.Background(), signedNotification(t, map[string]string{
		"Ds_Order":    "260828150405",
		"Ds_Response": "0000",
	}))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleNotification_DeclinedPaymentNoSideEffects(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentFailed, ResponseCode: "0180"}
	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(&domain.Payment{ID: "pay-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentPending}, nil)
	f.reconcile.On("Reconcile", mock.Anything, "260828150405", mock.Anything).Return(&repository.ReconcileResult{
		Payment: p,
		Booking: pendingBooking(),
	}, nil)

	res, err := f.svc.HandleNotification(context.Background(), signedNotification(t, map[string]string{
		"Ds_Order":    "260828150405",
		"Ds_Amount":   "28500",
		"Ds_Response": "0180",
	}))
	require.NoError(t, err)
	assert.False(t, res.Applied)
	f.notifs.AssertNotCalled(t, "PaymentReceived", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.customers.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_ConflictSurfacesAction(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", BookingID: "bk-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentCompleted}
	b := pendingBooking()

	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(p, nil)
	f.reconcile.On("Reconcile", mock.Anything, "260828150405", mock.Anything).Return(&repository.ReconcileResult{
		Payment:          p,
		Booking:          b,
		Conflict:         true,
		WinningBookingID: "bk-9",
	}, nil)
	f.notifs.On("PaymentConflict", mock.Anything, b, p).Return(nil)

	resp, res, err := f.svc.Verify(context.Background(), VerifyRequest{OrderNumber: "260828150405", ResponseCode: "0000"})
	require.NoError(t, err)

	assert.True(t, res.Conflict)
	assert.Equal(t, "REFUND_OR_REASSIGN", resp.RequiresAction)
	assert.Equal(t, "bk-9", resp.WinningBooking)
	f.notifs.AssertExpectations(t)
}

func TestVerify_RejectsTamperedParams(t *testing.T) {
	f := newFixture(t, true)

	sn := signedNotification(t, map[string]string{"Ds_Order": "260828150405", "Ds_Response": "0000"})
	tampered := encodeParams(t, map[string]string{"Ds_Order": "260828150405", "Ds_Response": "9999"})

	_, _, err := f.svc.Verify(context.Background(), VerifyRequest{
		OrderNumber:    "260828150405",
		ResponseCode:   "0000",
		MerchantParams: tampered,
		Signature:      sn.Signature,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	f.reconcile.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_SuccessPageToleratesStaleSignature(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", BookingID: "bk-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentCompleted}

	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(p, nil)
	f.reconcile.On("Reconcile", mock.Anything, "260828150405", mock.Anything).Return(&repository.ReconcileResult{
		Payment:          p,
		Booking:          pendingBooking(),
		AlreadyProcessed: true,
	}, nil)

	_, _, err := f.svc.Verify(context.Background(), VerifyRequest{
		OrderNumber:     "260828150405",
		ResponseCode:    "0000",
		MerchantParams:  encodeParams(t, map[string]string{"Ds_Order": "260828150405"}),
		Signature:       "bm90LWEtcmVhbC1zaWduYXR1cmU=",
		FromSuccessPage: true,
	})
	require.NoError(t, err)
	f.reconcile.AssertExpectations(t)
}

func TestVerify_DuplicateIsNoOp(t *testing.T) {
	f := newFixture(t, true)
	p := &domain.Payment{ID: "pay-1", BookingID: "bk-1", OrderNumber: "260828150405", Amount: 285, Status: domain.PaymentCompleted}
	b := pendingBooking()

	f.payments.On("GetByOrderNumber", mock.Anything, "260828150405").Return(p, nil)
	f.reconcile.On("Reconcile", mock.Anything, "260828150405", mock.Anything).Return(&repository.ReconcileResult{
		Payment:          p,
		Booking:          b,
		AlreadyProcessed: true,
	}, nil)

	resp, _, err := f.svc.Verify(context.Background(), VerifyRequest{OrderNumber: "260828150405", ResponseCode: "0000"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
	f.notifs.AssertNotCalled(t, "PaymentReceived", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.customers.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
