package model

import "time"

// 入荷1回分のまとまり。数量0になっても履歴として残す（削除しない）。
type StockBatch struct {
	BatchID      string    `gorm:"type:varchar(36);primaryKey" json:"batch_id"`
	ProductCode  string    `gorm:"type:varchar(20);not null;index" json:"product_code"`
	PurchaseDate time.Time `gorm:"type:date;not null" json:"purchase_date"`
	Quantity     int64     `gorm:"not null" json:"quantity"`
	ExpiryDate   time.Time `gorm:"type:date;not null" json:"expiry_date"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// DateOf は時刻をUTCの暦日（その日の0時）に正規化する。
// 仕入日・期限日の比較は全てこの暦日で行う
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// 指定日時点で期限切れか（当日はまだ有効）
func (b *StockBatch) IsExpiredOn(day time.Time) bool {
	return DateOf(day).After(b.ExpiryDate)
}

func (b *StockBatch) ReduceQuantity(amount int64) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > b.Quantity {
		return ErrInsufficientQuantity
	}
	b.Quantity -= amount
	return nil
}

func (b *StockBatch) DaysUntilExpiry(now time.Time) int {
	return int(b.ExpiryDate.Sub(DateOf(now)).Hours() / 24)
}
