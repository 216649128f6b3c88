package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type BillGormRepository struct {
	db *gorm.DB
}

func NewBillGormRepository(db *gorm.DB) *BillGormRepository {
	return &BillGormRepository{db: db}
}

// max(serial)+1。販売トランザクションの中で呼ぶこと
func (r *BillGormRepository) NextSerialNumber(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&model.Bill{}).
		Select("COALESCE(MAX(serial), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// 明細ごと保存（gormのアソシエーションでBillItemsも入る）
func (r *BillGormRepository) Save(ctx context.Context, bill model.Bill) (model.Bill, error) {
	if err := r.db.WithContext(ctx).Create(&bill).Error; err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}

func (r *BillGormRepository) FindBySerial(ctx context.Context, serial int64) (model.Bill, error) {
	var bill model.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("serial = ?", serial).
		First(&bill).Error
	if isNotFound(err) {
		return model.Bill{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}

func (r *BillGormRepository) ListByDate(ctx context.Context, day time.Time) ([]model.Bill, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var bills []model.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("bill_date >= ? AND bill_date < ?", start, end).
		Order("serial").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
