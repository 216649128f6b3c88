package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

type BillRepository interface {
	// 次のシリアル番号（単調増加）
	NextSerialNumber(ctx context.Context) (int64, error)

	// 明細ごと保存
	Save(ctx context.Context, bill model.Bill) (model.Bill, error)

	FindBySerial(ctx context.Context, serial int64) (model.Bill, error)

	// 指定日の会計一覧（日次レポート用）
	ListByDate(ctx context.Context, day time.Time) ([]model.Bill, error)
}
