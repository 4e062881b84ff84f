package repository

import (
	"context"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListRentable returns the fleet eligible for the availability search:
// published rental vehicles that are not retired or in the workshop.
func (r *VehicleRepository) ListRentable(ctx context.Context) ([]*domain.Vehicle, error) {
	var vehicles []*domain.Vehicle
	tx := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_for_rent = ?", true).
		Where("status = ?", string(domain.VehicleAvailable)).
		Order("sort_order ASC, name ASC").
		Find(&vehicles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return vehicles, nil
}
