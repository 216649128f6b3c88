package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) FindByProductCode(ctx context.Context, code string) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).Where("product_code = ?", code).First(&inv).Error
	if isNotFound(err) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// SELECT ... FOR UPDATE。同一商品への同時販売・移動はここで直列化され、
// 後続のトランザクションはコミット済みの最新値を読む（ロストアップデート防止）
func (r *InventoryGormRepository) FindByProductCodeForUpdate(ctx context.Context, code string) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_code = ?", code).
		First(&inv).Error
	if isNotFound(err) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

func (r *InventoryGormRepository) Save(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// 数量の絶対値を書き戻す。FindByProductCodeForUpdateで行を押さえた
// トランザクション内でのみ呼ぶこと
func (r *InventoryGormRepository) Update(ctx context.Context, inv model.Inventory) error {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("product_code = ?", inv.ProductCode).
		Updates(map[string]interface{}{
			"shelf_qty":  inv.ShelfQty,
			"store_qty":  inv.StoreQty,
			"online_qty": inv.OnlineQty,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) ListBelowReorder(ctx context.Context) ([]model.Inventory, error) {
	var items []model.Inventory
	err := r.db.WithContext(ctx).
		Where("shelf_qty + store_qty + online_qty < ?", model.ReorderLevel).
		Order("product_code").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryGormRepository) ListAll(ctx context.Context) ([]model.Inventory, error) {
	var items []model.Inventory
	if err := r.db.WithContext(ctx).Order("product_code").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
