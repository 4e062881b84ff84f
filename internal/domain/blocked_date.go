package domain

import "time"

// BlockedDate is an administrative hold on a vehicle (maintenance, transfers
// between bases). It blocks availability like a fully paid booking but has
// no payment attached.
type BlockedDate struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	VehicleID string    `json:"vehicle_id" gorm:"column:vehicle_id"`
	StartDate time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate   time.Time `json:"end_date" gorm:"column:end_date"`
	Reason    string    `json:"reason,omitempty" gorm:"column:reason"`
	CreatedBy string    `json:"created_by,omitempty" gorm:"column:created_by"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (BlockedDate) TableName() string { return "blocked_dates" }
