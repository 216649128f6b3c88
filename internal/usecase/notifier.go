package usecase

import (
	"app/internal/domain/model"

	"go.uber.org/zap"
)

// 在庫変化の通知を受け取る側の約束
type InventoryListener interface {
	OnInventoryChanged(inv model.Inventory)
	OnLowStock(inv model.Inventory)
}

// リスナーへの同期ファンアウト。登録順に呼ぶ。
// キューも再試行もなく、リスナーの失敗は隔離しない（呼び出し元へそのまま伝わる）。
type InventoryNotifier struct {
	listeners []InventoryListener
}

func NewInventoryNotifier() *InventoryNotifier {
	return &InventoryNotifier{}
}

func (n *InventoryNotifier) Attach(l InventoryListener) {
	if l == nil {
		return
	}
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

func (n *InventoryNotifier) Detach(l InventoryListener) {
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// 変化イベントを全員に流し、変化後の合計が発注点未満なら続けて
// 低在庫イベントを流す。changedが必ずlow-stockより先。
func (n *InventoryNotifier) NotifyChanged(inv model.Inventory) {
	for _, l := range n.listeners {
		l.OnInventoryChanged(inv)
	}

	if inv.IsBelowReorderLevel() {
		for _, l := range n.listeners {
			l.OnLowStock(inv)
		}
	}
}

// ログに書くだけのリスナー
type StockAlertListener struct {
	log *zap.Logger
}

func NewStockAlertListener(log *zap.Logger) *StockAlertListener {
	if log == nil {
		log = zap.NewNop()
	}
	return &StockAlertListener{log: log}
}

func (l *StockAlertListener) OnInventoryChanged(inv model.Inventory) {
	l.log.Info("inventory updated",
		zap.String("product_code", inv.ProductCode),
		zap.Int64("shelf_qty", inv.ShelfQty),
		zap.Int64("store_qty", inv.StoreQty),
		zap.Int64("online_qty", inv.OnlineQty),
		zap.Int64("total", inv.TotalQuantity()),
	)
}

func (l *StockAlertListener) OnLowStock(inv model.Inventory) {
	l.log.Warn("low stock, reorder required",
		zap.String("product_code", inv.ProductCode),
		zap.Int64("total", inv.TotalQuantity()),
		zap.Int64("reorder_level", model.ReorderLevel),
	)
}
