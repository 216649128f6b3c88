package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Unit        string          `gorm:"type:varchar(20);not null" json:"unit"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DiscountPct decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_pct"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// 割引後の単価（price × (1 − discount/100)）
func (p Product) DiscountedPrice() decimal.Decimal {
	rate := decimal.NewFromInt(1).Sub(p.DiscountPct.Div(decimal.NewFromInt(100)))
	return p.Price.Mul(rate)
}
