package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type StockMovementGormRepository struct {
	db *gorm.DB
}

func NewStockMovementGormRepository(db *gorm.DB) *StockMovementGormRepository {
	return &StockMovementGormRepository{db: db}
}

func (r *StockMovementGormRepository) Create(ctx context.Context, m model.StockMovement) error {
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *StockMovementGormRepository) ListByProduct(ctx context.Context, code string) ([]model.StockMovement, error) {
	var items []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("product_code = ?", code).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
