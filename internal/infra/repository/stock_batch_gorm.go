package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockBatchGormRepository struct {
	db *gorm.DB
}

func NewStockBatchGormRepository(db *gorm.DB) *StockBatchGormRepository {
	return &StockBatchGormRepository{db: db}
}

// purchase_date, batch_id順で返す。選択アルゴリズムの同値時の並びを安定させる
func (r *StockBatchGormRepository) ListByProduct(ctx context.Context, code string) ([]model.StockBatch, error) {
	var items []model.StockBatch
	err := r.db.WithContext(ctx).
		Where("product_code = ?", code).
		Order("purchase_date, batch_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// BatchIDはここで採番（UUID）。プロセス内カウンタには依存しない
func (r *StockBatchGormRepository) Save(ctx context.Context, b model.StockBatch) (model.StockBatch, error) {
	if b.BatchID == "" {
		b.BatchID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.StockBatch{}, err
	}
	return b, nil
}

func (r *StockBatchGormRepository) UpdateQuantity(ctx context.Context, batchID string, quantity int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.StockBatch{}).
		Where("batch_id = ?", batchID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
