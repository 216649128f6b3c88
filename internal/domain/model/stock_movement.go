package model

import "time"

// 在庫が動いた種別
type MovementKind string

const (
	//入荷（倉庫へ）
	MovementReceipt MovementKind = "RECEIPT"

	//販売（棚またはオンラインから）
	MovementSale MovementKind = "SALE"

	//倉庫→棚の移動
	MovementTransferShelf MovementKind = "TRANSFER_SHELF"

	//倉庫→オンラインの移動
	MovementTransferOnline MovementKind = "TRANSFER_ONLINE"
)

// 在庫移動の履歴。「いつ」「どの商品が」「何個」「どう動いたか」を残す。
type StockMovement struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductCode string       `gorm:"type:varchar(20);not null;index" json:"product_code"`
	Kind        MovementKind `gorm:"type:varchar(30);not null;index" json:"kind"`
	Quantity    int64        `gorm:"not null" json:"quantity"`

	//販売なら対象レシートのシリアル
	BillSerial *int64 `gorm:"index" json:"bill_serial,omitempty"`

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
