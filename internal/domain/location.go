package domain

import "time"

type Location struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"name" gorm:"column:name"`
	Slug      string    `json:"slug" gorm:"column:slug;uniqueIndex"`
	Address   string    `json:"address,omitempty" gorm:"column:address"`
	ExtraFee  float64   `json:"extra_fee" gorm:"column:extra_fee"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Location) TableName() string { return "locations" }
