package domain

import "time"

// Season is a named date interval with duration-tiered daily rates.
// Seasons are configured by administrative tooling and read-only here;
// adjacency and non-overlap are a convention, not enforced.
type Season struct {
	ID                string    `json:"id" gorm:"column:id;primaryKey"`
	Name              string    `json:"name" gorm:"column:name"`
	Slug              string    `json:"slug" gorm:"column:slug"`
	StartDate         time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate           time.Time `json:"end_date" gorm:"column:end_date"`
	PriceLessThanWeek float64   `json:"price_less_than_week" gorm:"column:price_less_than_week"`
	PriceOneWeek      float64   `json:"price_one_week" gorm:"column:price_one_week"`
	PriceTwoWeeks     float64   `json:"price_two_weeks" gorm:"column:price_two_weeks"`
	PriceThreeWeeks   float64   `json:"price_three_weeks" gorm:"column:price_three_weeks"`
	MinDays           int       `json:"min_days" gorm:"column:min_days"`
	IsActive          bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Season) TableName() string { return "seasons" }

// Contains reports whether the calendar day falls inside the season,
// boundaries included.
func (s *Season) Contains(day time.Time) bool {
	return !day.Before(s.StartDate) && !day.After(s.EndDate)
}
