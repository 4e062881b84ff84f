package admin

type CreateBlockedDateRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// UpdateSeasonRequest is a partial update; absent fields keep their value.
type UpdateSeasonRequest struct {
	Name              *string  `json:"name"`
	Slug              *string  `json:"slug"`
	StartDate         *string  `json:"start_date"`
	EndDate           *string  `json:"end_date"`
	PriceLessThanWeek *float64 `json:"price_less_than_week" binding:"omitempty,gt=0"`
	PriceOneWeek      *float64 `json:"price_one_week" binding:"omitempty,gt=0"`
	PriceTwoWeeks     *float64 `json:"price_two_weeks" binding:"omitempty,gt=0"`
	PriceThreeWeeks   *float64 `json:"price_three_weeks" binding:"omitempty,gt=0"`
	MinDays           *int     `json:"min_days"`
	IsActive          *bool    `json:"is_active"`
}

type CreateSeasonRequest struct {
	Name              string  `json:"name" binding:"required"`
	Slug              string  `json:"slug"`
	StartDate         string  `json:"start_date" binding:"required"`
	EndDate           string  `json:"end_date" binding:"required"`
	PriceLessThanWeek float64 `json:"price_less_than_week" binding:"required,gt=0"`
	PriceOneWeek      float64 `json:"price_one_week" binding:"required,gt=0"`
	PriceTwoWeeks     float64 `json:"price_two_weeks" binding:"required,gt=0"`
	PriceThreeWeeks   float64 `json:"price_three_weeks" binding:"required,gt=0"`
	MinDays           int     `json:"min_days"`
	IsActive          *bool   `json:"is_active"`
}
