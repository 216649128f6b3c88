package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type SaleChannel string

const (
	SaleChannelCounter SaleChannel = "COUNTER"
	SaleChannelOnline  SaleChannel = "ONLINE"
)

var (
	// 明細が1件もない
	ErrEmptyBill = errors.New("bill must have at least one item")

	// 預かり金が合計未満
	ErrInsufficientCash = errors.New("cash tendered must cover the total")
)

// 会計1回分。作成後は変更しない。
// 商品名・単価・割引は会計時点のスナップショットを持つ。
type Bill struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Serial       int64           `gorm:"not null;uniqueIndex" json:"serial"`
	BillDate     time.Time       `gorm:"not null" json:"bill_date"`
	Channel      SaleChannel     `gorm:"type:varchar(20);not null;index" json:"channel"`
	CustomerID   string          `gorm:"type:varchar(36)" json:"customer_id,omitempty"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Discount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CashTendered decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cash_tendered"`
	Change       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"change"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"items"`
}

type BillItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID      int64           `gorm:"not null;index" json:"bill_id"`
	ProductCode string          `gorm:"type:varchar(20);not null;index" json:"product_code"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Unit        string          `gorm:"type:varchar(20);not null" json:"unit"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	DiscountPct decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_pct"`
}

func (it BillItem) ItemTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}

func (it BillItem) DiscountAmount() decimal.Decimal {
	return it.ItemTotal().Mul(it.DiscountPct.Div(decimal.NewFromInt(100)))
}

func (it BillItem) FinalPrice() decimal.Decimal {
	return it.ItemTotal().Sub(it.DiscountAmount())
}

// 合計を計算して検証込みでBillを組み立てる
func NewBill(serial int64, billDate time.Time, items []BillItem, cashTendered decimal.Decimal, channel SaleChannel, customerID string) (Bill, error) {
	if len(items) == 0 {
		return Bill{}, ErrEmptyBill
	}

	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.ItemTotal())
		discount = discount.Add(it.DiscountAmount())
	}
	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	total := subtotal.Sub(discount)

	if cashTendered.LessThan(total) {
		return Bill{}, ErrInsufficientCash
	}

	return Bill{
		Serial:       serial,
		BillDate:     billDate,
		Channel:      channel,
		CustomerID:   customerID,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		CashTendered: cashTendered,
		Change:       cashTendered.Sub(total),
		Items:        items,
	}, nil
}
