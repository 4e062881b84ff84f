package domain

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

type VehicleCategory struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"name" gorm:"column:name"`
	Slug      string    `json:"slug" gorm:"column:slug;uniqueIndex"`
	SortOrder int       `json:"sort_order" gorm:"column:sort_order"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (VehicleCategory) TableName() string { return "vehicle_categories" }

type Vehicle struct {
	ID         string           `json:"id" gorm:"column:id;primaryKey"`
	Name       string           `json:"name" gorm:"column:name"`
	Slug       string           `json:"slug" gorm:"column:slug;uniqueIndex"`
	CategoryID string           `json:"category_id" gorm:"column:category_id"`
	Category   *VehicleCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Seats      int              `json:"seats" gorm:"column:seats"`
	Beds       int              `json:"beds" gorm:"column:beds"`
	IsForRent  bool             `json:"is_for_rent" gorm:"column:is_for_rent"`
	Status     VehicleStatus    `json:"status" gorm:"column:status"`
	SortOrder  int              `json:"sort_order" gorm:"column:sort_order"`
	CreatedAt  time.Time        `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"column:updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }
