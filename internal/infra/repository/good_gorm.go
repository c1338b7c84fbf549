package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type GoodGormRepository struct {
	db *gorm.DB
}

func NewGoodGormRepository(db *gorm.DB) *GoodGormRepository {
	return &GoodGormRepository{db: db}
}

func (r *GoodGormRepository) FindByID(ctx context.Context, goodID int64) (model.Good, error) {
	var g model.Good
	err := r.db.WithContext(ctx).Where("id = ?", goodID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Good{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Good{}, err
	}
	return g, nil
}

func (r *GoodGormRepository) ListActive(ctx context.Context) ([]model.Good, error) {
	var items []model.Good
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Good{}, err
	}
	return items, nil
}
