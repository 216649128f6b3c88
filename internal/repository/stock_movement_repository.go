package repository

import (
	"app/internal/domain/model"
	"context"
)

// 在庫移動履歴の保存
type StockMovementRepository interface {
	Create(ctx context.Context, m model.StockMovement) error
	ListByProduct(ctx context.Context, code string) ([]model.StockMovement, error)
}
