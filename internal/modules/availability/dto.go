package availability

import (
	"camperrent/internal/domain"
	"camperrent/internal/modules/pricing"
)

type SearchRequest struct {
	PickupDate  string `form:"pickup_date" binding:"required"`
	PickupTime  string `form:"pickup_time"`
	DropoffDate string `form:"dropoff_date" binding:"required"`
	DropoffTime string `form:"dropoff_time"`

	Category          string `form:"category"`
	PickupLocationID  string `form:"pickup_location_id"`
	DropoffLocationID string `form:"dropoff_location_id"`
}

type VehicleResult struct {
	Vehicle    *domain.Vehicle `json:"vehicle"`
	TotalPrice float64         `json:"total_price"`
}

type SearchResponse struct {
	Vehicles     []VehicleResult `json:"vehicles"`
	TotalResults int             `json:"total_results"`
	Quote        pricing.Quote   `json:"quote"`
	LocationFee  float64         `json:"location_fee"`
}
