package model

import (
	"errors"
	"time"
)

// 発注点。合計がこれを下回ったら低在庫扱い
const ReorderLevel = 50

var (
	// 数量が0以下
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// 残数を超える減算
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// 商品ごとの在庫。棚・倉庫・オンラインの3箇所で別々に数える。
// 各数量は常に0以上。失敗する操作はエンティティを変更しない。
type Inventory struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductCode string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"product_code"`
	ShelfQty    int64     `gorm:"not null;default:0" json:"shelf_qty"`
	StoreQty    int64     `gorm:"not null;default:0" json:"store_qty"`
	OnlineQty   int64     `gorm:"not null;default:0" json:"online_qty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func NewInventory(productCode string) Inventory {
	return Inventory{ProductCode: productCode}
}

func (i *Inventory) TotalQuantity() int64 {
	return i.ShelfQty + i.StoreQty + i.OnlineQty
}

func (i *Inventory) IsBelowReorderLevel() bool {
	return i.TotalQuantity() < ReorderLevel
}

func (i *Inventory) AddToShelf(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	i.ShelfQty += qty
	return nil
}

func (i *Inventory) AddToStore(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	i.StoreQty += qty
	return nil
}

func (i *Inventory) AddToOnline(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	i.OnlineQty += qty
	return nil
}

func (i *Inventory) ReduceFromShelf(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > i.ShelfQty {
		return ErrInsufficientQuantity
	}
	i.ShelfQty -= qty
	return nil
}

func (i *Inventory) ReduceFromStore(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > i.StoreQty {
		return ErrInsufficientQuantity
	}
	i.StoreQty -= qty
	return nil
}

func (i *Inventory) ReduceFromOnline(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > i.OnlineQty {
		return ErrInsufficientQuantity
	}
	i.OnlineQty -= qty
	return nil
}

// 倉庫→棚。減算チェックが先なので途中状態は残らない
func (i *Inventory) TransferStoreToShelf(qty int64) error {
	if err := i.ReduceFromStore(qty); err != nil {
		return err
	}
	return i.AddToShelf(qty)
}

// 倉庫→オンライン
func (i *Inventory) TransferStoreToOnline(qty int64) error {
	if err := i.ReduceFromStore(qty); err != nil {
		return err
	}
	return i.AddToOnline(qty)
}
