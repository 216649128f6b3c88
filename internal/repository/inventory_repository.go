package repository

import (
	"app/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	// 商品コードで1件取得
	FindByProductCode(ctx context.Context, code string) (model.Inventory, error)

	// 商品コードで1件取得し、トランザクション終了まで行ロックを握る。
	// 同一商品の販売・移動・入荷を直列化するため、書き換えフェーズの
	// 読み取りは必ずこちらを使うこと
	FindByProductCodeForUpdate(ctx context.Context, code string) (model.Inventory, error)

	// 新規作成
	Save(ctx context.Context, inv model.Inventory) (model.Inventory, error)

	// 数量の更新
	Update(ctx context.Context, inv model.Inventory) error

	// 合計が発注点未満の在庫一覧
	ListBelowReorder(ctx context.Context) ([]model.Inventory, error)

	// 全件（レポート用）
	ListAll(ctx context.Context) ([]model.Inventory, error)
}
