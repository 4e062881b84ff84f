package availability

import (
	"context"
	"fmt"

	"camperrent/internal/modules/pricing"
)

type Service struct {
	vehicles  vehicleSource
	bookings  bookingBlocks
	blocks    adminBlocks
	seasons   seasonSource
	locations locationSource
	engine    *pricing.Engine
	loggerf   func(format string, args ...interface{})
}

func NewService(vehicles vehicleSource, bookings bookingBlocks, blocks adminBlocks, seasons seasonSource, locations locationSource, engine *pricing.Engine, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		vehicles:  vehicles,
		bookings:  bookings,
		blocks:    blocks,
		seasons:   seasons,
		locations: locations,
		engine:    engine,
		loggerf:   loggerf,
	}
}

// Search returns the vehicles free over the requested range, priced. Any
// store error fails the whole search rather than risk offering a vehicle
// whose bookings could not be read.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
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

	days := pricing.RentalDays(pickup, dropoff)

	candidates, err := s.vehicles.ListRentable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}

	bookedIDs, err := s.bookings.FindBlockingVehicleIDs(ctx, pickup, dropoff)
	if err != nil {
		return nil, fmt.Errorf("load booked vehicles: %w", err)
	}
	blockedIDs, err := s.blocks.FindBlockedVehicleIDs(ctx, pickup, dropoff)
	if err != nil {
		return nil, fmt.Errorf("load blocked vehicles: %w", err)
	}

	unavailable := make(map[string]bool, len(bookedIDs)+len(blockedIDs))
	for _, id := range bookedIDs {
		unavailable[id] = true
	}
	for _, id := range blockedIDs {
		unavailable[id] = true
	}

	// The walk may bill an extra day, so load seasons past the dropoff.
	seasons, err := s.seasons.ListOverlapping(ctx, pickup, dropoff.AddDate(0, 0, 2))
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	quote := s.engine.Quote(pickup, days, seasons)

	locationFee, err := s.locationFee(ctx, req.PickupLocationID, req.DropoffLocationID)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Vehicles:    []VehicleResult{},
		Quote:       quote,
		LocationFee: locationFee,
	}
	for _, v := range candidates {
		if unavailable[v.ID] {
			continue
		}
		if req.Category != "" && (v.Category == nil || v.Category.Slug != req.Category) {
			continue
		}
		resp.Vehicles = append(resp.Vehicles, VehicleResult{
			Vehicle:    v,
			TotalPrice: quote.Total + locationFee,
		})
	}
	resp.TotalResults = len(resp.Vehicles)

	s.loggerf("level=info msg=availability search pickup=%s dropoff=%s days=%d results=%d", pickup.Format("2006-01-02"), dropoff.Format("2006-01-02"), days, resp.TotalResults)
	return resp, nil
}

// locationFee charges the dropoff location's surcharge when the vehicle
// comes back to a different base than it left from.
func (s *Service) locationFee(ctx context.Context, pickupLocID, dropoffLocID string) (float64, error) {
	if dropoffLocID == "" || dropoffLocID == pickupLocID {
		return 0, nil
	}
	loc, err := s.locations.GetByID(ctx, dropoffLocID)
	if err != nil {
		return 0, fmt.Errorf("load dropoff location: %w", err)
	}
	return loc.ExtraFee, nil
}
