package repository

import (
	"camperrent/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every mapped model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.VehicleCategory{},
		&domain.Vehicle{},
		&domain.Location{},
		&domain.Season{},
		&domain.Customer{},
		&domain.User{},
		&bookingModel{},
		&domain.Payment{},
		&domain.BlockedDate{},
	)
}
