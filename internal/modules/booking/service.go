package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"camperrent/internal/domain"
	"camperrent/internal/modules/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	bookings  bookingStore
	customers customerStore
	vehicles  vehicleReader
	seasons   seasonSource
	locations locationReader
	engine    *pricing.Engine
	notifs    notifier
	loggerf   func(format string, args ...interface{})
}

func NewService(bookings bookingStore, customers customerStore, vehicles vehicleReader, seasons seasonSource, locations locationReader, engine *pricing.Engine, notifs notifier, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings:  bookings,
		customers: customers,
		vehicles:  vehicles,
		seasons:   seasons,
		locations: locations,
		engine:    engine,
		notifs:    notifs,
		loggerf:   loggerf,
	}
}

// Create records a pending booking. It does not block the vehicle; only a
// reconciled payment does that. The overlap check here is a courtesy so the
// customer is not sent to the gateway for a vehicle that is already gone.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	pickup, err := pricing.CombineDateTime(req.PickupDate, req.PickupTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	dropoff, err := pricing.CombineDateTime(req.DropoffDate, req.DropoffTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !dropoff.After(pickup) {
		return nil, fmt.Errorf("%w: dropoff must be after pickup", ErrValidation)
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("load vehicle: %w", err)
	}
	if !vehicle.IsForRent || vehicle.Status != domain.VehicleAvailable {
		return nil, ErrVehicleNotFound
	}

	taken, err := s.bookings.HasBlockingOverlap(ctx, vehicle.ID, pickup, dropoff, "")
	if err != nil {
		return nil, fmt.Errorf("availability check: %w", err)
	}
	if taken {
		return nil, ErrNotAvailable
	}

	days := pricing.RentalDays(pickup, dropoff)
	seasons, err := s.seasons.ListOverlapping(ctx, pickup, dropoff.AddDate(0, 0, 2))
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	quote := s.engine.Quote(pickup, days, seasons)

	locationFee := 0.0
	if req.DropoffLocationID != "" && req.DropoffLocationID != req.PickupLocationID {
		loc, err := s.locations.GetByID(ctx, req.DropoffLocationID)
		if err != nil {
			return nil, fmt.Errorf("load dropoff location: %w", err)
		}
		locationFee = loc.ExtraFee
	}

	customer := &domain.Customer{
		Email:   req.Customer.Email,
		Name:    req.Customer.Name,
		Phone:   req.Customer.Phone,
		City:    req.Customer.City,
		Country: req.Customer.Country,
	}
	if err := s.customers.UpsertByEmail(ctx, customer); err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}

	b := &domain.Booking{
		BookingNumber:     newBookingNumber(),
		VehicleID:         vehicle.ID,
		CustomerID:        customer.ID,
		PickupLocationID:  req.PickupLocationID,
		DropoffLocationID: req.DropoffLocationID,
		PickupDate:        pickup,
		PickupTime:        req.PickupTime,
		DropoffDate:       dropoff,
		DropoffTime:       req.DropoffTime,
		Days:              days,
		BasePrice:         quote.BaseTotal,
		LocationFee:       locationFee,
		Discount:          quote.BaseTotal - quote.Total,
		TotalPrice:        quote.Total + locationFee,
		Status:            domain.BookingPending,
		PaymentStatus:     domain.BookingUnpaid,
		CustomerName:      customer.Name,
		CustomerEmail:     customer.Email,
		CustomerPhone:     customer.Phone,
		Notes:             req.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.loggerf("level=info msg=booking created booking_number=%s vehicle_id=%s total=%.2f", b.BookingNumber, b.VehicleID, b.TotalPrice)

	// Confirmation email must not delay or fail the response.
	go func(b domain.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifs.BookingCreated(ctx, &b); err != nil {
			s.loggerf("level=error msg=booking created email failed booking_number=%s err=%v", b.BookingNumber, err)
		}
	}(*b)

	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// newBookingNumber makes a human-quotable reference like BK-260828-7F3A2C.
func newBookingNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("BK-%s-%s", time.Now().UTC().Format("060102"), suffix)
}
