package repository

import (
	"app/internal/domain/model"
	"context"
)

type StockBatchRepository interface {
	// 商品のバッチ一覧。purchase_date, batch_id順の安定した並びで返す
	ListByProduct(ctx context.Context, code string) ([]model.StockBatch, error)

	// 新規バッチ保存。BatchIDはストア側で採番する
	Save(ctx context.Context, b model.StockBatch) (model.StockBatch, error)

	// 数量のみ更新
	UpdateQuantity(ctx context.Context, batchID string, quantity int64) error
}
