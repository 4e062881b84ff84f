package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"camperrent/internal/domain"
	"camperrent/internal/modules/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVehicleSource struct{ mock.Mock }

func (m *MockVehicleSource) ListRentable(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

type MockBookingBlocks struct{ mock.Mock }

func (m *MockBookingBlocks) FindBlockingVehicleIDs(ctx context.Context, pickup, dropoff time.Time) ([]string, error) {
	args := m.Called(ctx, pickup, dropoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAdminBlocks struct{ mock.Mock }

func (m *MockAdminBlocks) FindBlockedVehicleIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSeasonSource struct{ mock.Mock }

func (m *MockSeasonSource) ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Season, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Season), args.Error(1)
}

type MockLocationSource struct{ mock.Mock }

func (m *MockLocationSource) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func newTestService(vehicles *MockVehicleSource, bookings *MockBookingBlocks, blocks *MockAdminBlocks, seasons *MockSeasonSource, locations *MockLocationSource) *Service {
	engine := pricing.NewEngine(pricing.FallbackRates{
		Name:              "Temporada Baja",
		PriceLessThanWeek: 95,
		PriceOneWeek:      85,
		PriceTwoWeeks:     75,
		PriceThreeWeeks:   65,
		MinDays:           2,
	})
	return NewService(vehicles, bookings, blocks, seasons, locations, engine, nil)
}

func fleet() []*domain.Vehicle {
	return []*domain.Vehicle{
		{ID: "v1", Name: "Camper One", Category: &domain.VehicleCategory{Slug: "camper"}},
		{ID: "v2", Name: "Camper Two", Category: &domain.VehicleCategory{Slug: "camper"}},
		{ID: "v3", Name: "Big Box", Category: &domain.VehicleCategory{Slug: "motorhome"}},
	}
}

func TestSearch_FiltersBookedAndBlocked(t *testing.T) {
	vehicles := new(MockVehicleSource)
	bookings := new(MockBookingBlocks)
	blocks := new(MockAdminBlocks)
	seasons := new(MockSeasonSource)
	locations := new(MockLocationSource)
	svc := newTestService(vehicles, bookings, blocks, seasons, locations)

	vehicles.On("ListRentable", mock.Anything).Return(fleet(), nil)
	bookings.On("FindBlockingVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{"v1"}, nil)
	blocks.On("FindBlockedVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{"v3"}, nil)
	seasons.On("ListOverlapping", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Season{}, nil)

	res, err := svc.Search(context.Background(), SearchRequest{
		PickupDate:  "2026-03-10",
		PickupTime:  "10:00",
		DropoffDate: "2026-03-13",
		DropoffTime: "10:00",
	})
	require.NoError(t, err)

	require.Equal(t, 1, res.TotalResults)
	assert.Equal(t, "v2", res.Vehicles[0].Vehicle.ID)
	assert.Equal(t, 3, res.Quote.Days)
	assert.Equal(t, 285.0, res.Quote.Total)
}

func TestSearch_CategoryFilter(t *testing.T) {
	vehicles := new(MockVehicleSource)
	bookings := new(MockBookingBlocks)
	blocks := new(MockAdminBlocks)
	seasons := new(MockSeasonSource)
	locations := new(MockLocationSource)
	svc := newTestService(vehicles, bookings, blocks, seasons, locations)

	vehicles.On("ListRentable", mock.Anything).Return(fleet(), nil)
	bookings.On("FindBlockingVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	blocks.On("FindBlockedVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	seasons.On("ListOverlapping", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Season{}, nil)

	res, err := svc.Search(context.Background(), SearchRequest{
		PickupDate:  "2026-03-10",
		DropoffDate: "2026-03-13",
		Category:    "motorhome",
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalResults)
	assert.Equal(t, "v3", res.Vehicles[0].Vehicle.ID)
}

func TestSearch_DropoffLocationSurcharge(t *testing.T) {
	vehicles := new(MockVehicleSource)
	bookings := new(MockBookingBlocks)
	blocks := new(MockAdminBlocks)
	seasons := new(MockSeasonSource)
	locations := new(MockLocationSource)
	svc := newTestService(vehicles, bookings, blocks, seasons, locations)

	vehicles.On("ListRentable", mock.Anything).Return(fleet(), nil)
	bookings.On("FindBlockingVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	blocks.On("FindBlockedVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	seasons.On("ListOverlapping", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Season{}, nil)
	locations.On("GetByID", mock.Anything, "loc-bcn").Return(&domain.Location{ID: "loc-bcn", ExtraFee: 120}, nil)

	res, err := svc.Search(context.Background(), SearchRequest{
		PickupDate:        "2026-03-10",
		DropoffDate:       "2026-03-13",
		PickupLocationID:  "loc-mad",
		DropoffLocationID: "loc-bcn",
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, res.LocationFee)
	assert.Equal(t, res.Quote.Total+120, res.Vehicles[0].TotalPrice)
}

func TestSearch_FailsClosedOnStoreError(t *testing.T) {
	vehicles := new(MockVehicleSource)
	bookings := new(MockBookingBlocks)
	blocks := new(MockAdminBlocks)
	seasons := new(MockSeasonSource)
	locations := new(MockLocationSource)
	svc := newTestService(vehicles, bookings, blocks, seasons, locations)

	vehicles.On("ListRentable", mock.Anything).Return(fleet(), nil)
	bookings.On("FindBlockingVehicleIDs", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Search(context.Background(), SearchRequest{
		PickupDate:  "2026-03-10",
		DropoffDate: "2026-03-13",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestSearch_RejectsInvertedRange(t *testing.T) {
	svc := newTestService(new(MockVehicleSource), new(MockBookingBlocks), new(MockAdminBlocks), new(MockSeasonSource), new(MockLocationSource))

	_, err := svc.Search(context.Background(), SearchRequest{
		PickupDate:  "2026-03-13",
		DropoffDate: "2026-03-10",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
