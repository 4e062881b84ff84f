package repository

import (
	"context"
	"time"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockedDateRepository struct {
	db *gorm.DB
}

func NewBlockedDateRepository(db *gorm.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

func (r *BlockedDateRepository) Create(ctx context.Context, b *domain.BlockedDate) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

// FindBlockedVehicleIDs returns vehicles with an administrative hold
// overlapping [from, to].
func (r *BlockedDateRepository) FindBlockedVehicleIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	var ids []string
	tx := r.db.WithContext(ctx).
		Model(&domain.BlockedDate{}).
		Distinct("vehicle_id").
		Where("start_date <= ? AND end_date >= ?", to, from).
		Pluck("vehicle_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (r *BlockedDateRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.BlockedDate, error) {
	var blocks []*domain.BlockedDate
	tx := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_date ASC").
		Find(&blocks)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return blocks, nil
}

func (r *BlockedDateRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.BlockedDate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
