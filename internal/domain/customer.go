package domain

import "time"

type Customer struct {
	ID            string    `json:"id" gorm:"column:id;primaryKey"`
	Email         string    `json:"email" gorm:"column:email;uniqueIndex" validate:"required,email"`
	Name          string    `json:"name" gorm:"column:name"`
	Phone         string    `json:"phone,omitempty" gorm:"column:phone"`
	City          string    `json:"city,omitempty" gorm:"column:city"`
	Country       string    `json:"country,omitempty" gorm:"column:country"`
	TotalBookings int       `json:"total_bookings" gorm:"column:total_bookings"`
	TotalSpent    float64   `json:"total_spent" gorm:"column:total_spent"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Customer) TableName() string { return "customers" }
