package repository

import (
	"context"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	var l domain.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) ListActive(ctx context.Context) ([]*domain.Location, error) {
	var locations []*domain.Location
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&locations)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return locations, nil
}
