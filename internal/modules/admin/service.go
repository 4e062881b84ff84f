package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"camperrent/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	blocks   blockedDateStore
	seasons  seasonStore
	vehicles vehicleReader
	loggerf  func(format string, args ...interface{})
}

func NewService(blocks blockedDateStore, seasons seasonStore, vehicles vehicleReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{blocks: blocks, seasons: seasons, vehicles: vehicles, loggerf: loggerf}
}

func (s *Service) CreateBlockedDate(ctx context.Context, req CreateBlockedDateRequest, createdBy string) (*domain.BlockedDate, error) {
	start, err := parseDay(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}

	if _, err := s.vehicles.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, req.VehicleID)
		}
		return nil, fmt.Errorf("load vehicle: %w", err)
	}

	b := &domain.BlockedDate{
		VehicleID: req.VehicleID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		CreatedBy: createdBy,
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blocked date: %w", err)
	}

	s.loggerf("level=info msg=vehicle blocked vehicle_id=%s from=%s to=%s by=%s", b.VehicleID, req.StartDate, req.EndDate, createdBy)
	return b, nil
}

func (s *Service) ListBlockedDates(ctx context.Context, vehicleID string) ([]*domain.BlockedDate, error) {
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle_id is required", ErrValidation)
	}
	return s.blocks.ListByVehicle(ctx, vehicleID)
}

func (s *Service) DeleteBlockedDate(ctx context.Context, id string) error {
	if err := s.blocks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateSeason(ctx context.Context, req CreateSeasonRequest) (*domain.Season, error) {
	start, err := parseDay(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}

	slug := req.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "-"))
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	season := &domain.Season{
		Name:              req.Name,
		Slug:              slug,
		StartDate:         start,
		EndDate:           end,
		PriceLessThanWeek: req.PriceLessThanWeek,
		PriceOneWeek:      req.PriceOneWeek,
		PriceTwoWeeks:     req.PriceTwoWeeks,
		PriceThreeWeeks:   req.PriceThreeWeeks,
		MinDays:           req.MinDays,
		IsActive:          isActive,
	}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, fmt.Errorf("create season: %w", err)
	}
	return season, nil
}

func (s *Service) ListSeasons(ctx context.Context) ([]*domain.Season, error) {
	return s.seasons.List(ctx)
}

func (s *Service) UpdateSeason(ctx context.Context, id string, req UpdateSeasonRequest) (*domain.Season, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: season %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load season: %w", err)
	}

	if req.Name != nil {
		season.Name = *req.Name
	}
	if req.Slug != nil {
		season.Slug = *req.Slug
	}
	if req.StartDate != nil {
		start, err := parseDay(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		season.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDay(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		season.EndDate = end
	}
	if season.EndDate.Before(season.StartDate) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if req.PriceLessThanWeek != nil {
		season.PriceLessThanWeek = *req.PriceLessThanWeek
	}
	if req.PriceOneWeek != nil {
		season.PriceOneWeek = *req.PriceOneWeek
	}
	if req.PriceTwoWeeks != nil {
		season.PriceTwoWeeks = *req.PriceTwoWeeks
	}
	if req.PriceThreeWeeks != nil {
		season.PriceThreeWeeks = *req.PriceThreeWeeks
	}
	if req.MinDays != nil {
		season.MinDays = *req.MinDays
	}
	if req.IsActive != nil {
		season.IsActive = *req.IsActive
	}

	if err := s.seasons.Update(ctx, season); err != nil {
		return nil, fmt.Errorf("update season: %w", err)
	}
	s.loggerf("level=info msg=season updated season_id=%s slug=%s", season.ID, season.Slug)
	return season, nil
}

func (s *Service) DeleteSeason(ctx context.Context, id string) error {
	if err := s.seasons.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.loggerf("level=info msg=season deleted season_id=%s", id)
	return nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
