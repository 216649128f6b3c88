package usecase

import (
	"errors"
	"fmt"
	"time"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 入力が不正。副作用なし
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// 商品が存在しない。副作用なし
type ProductNotFoundError struct {
	Code string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Code)
}

// 在庫レコードが存在しない。副作用なし
type InventoryNotFoundError struct {
	Code string
}

func (e *InventoryNotFoundError) Error() string {
	return fmt.Sprintf("inventory not found for product: %s", e.Code)
}

// 販売時、指定チャネルの在庫が足りない。副作用なし
type InsufficientStockError struct {
	Code      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.Code, e.Available, e.Requested)
}

// 移動時、倉庫在庫が足りない。副作用なし
type InsufficientStoreQuantityError struct {
	Code      string
	Available int64
	Requested int64
}

func (e *InsufficientStoreQuantityError) Error() string {
	return fmt.Sprintf("insufficient store quantity for product %s: available %d, requested %d",
		e.Code, e.Available, e.Requested)
}

// 販売中にバッチ台帳が在庫数を説明できなかった。
// 検知した不整合であり、再試行や自動補正はしない。
type BatchExhaustionError struct {
	Code      string
	Remaining int64
}

func (e *BatchExhaustionError) Error() string {
	return fmt.Sprintf("no suitable stock batch for product %s: %d units unaccounted",
		e.Code, e.Remaining)
}

// 移動中にバッチ台帳が尽きた。BatchExhaustionと同じ扱い
type NoAvailableBatchError struct {
	Code      string
	Remaining int64
}

func (e *NoAvailableBatchError) Error() string {
	return fmt.Sprintf("no available batches for product %s: %d units unaccounted",
		e.Code, e.Remaining)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
