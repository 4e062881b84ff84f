package repository

import (
	"context"
	"time"

	"camperrent/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, s *domain.Season) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (*domain.Season, error) {
	var s domain.Season
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]*domain.Season, error) {
	var seasons []*domain.Season
	tx := r.db.WithContext(ctx).Order("start_date ASC").Find(&seasons)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return seasons, nil
}

// ListOverlapping returns active seasons touching [from, to]. The pricing
// walk loads these once per quote instead of querying per day.
func (r *SeasonRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Season, error) {
	var seasons []*domain.Season
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&seasons)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return seasons, nil
}

func (r *SeasonRepository) Update(ctx context.Context, s *domain.Season) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Season{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
