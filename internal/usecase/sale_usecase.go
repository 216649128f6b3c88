package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type SaleUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	inventory repo.InventoryRepository
	strategy  StockSelectionStrategy
	notifier  *InventoryNotifier
	clock     Clock
}

func NewSaleUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	inventory repo.InventoryRepository,
	strategy StockSelectionStrategy,
	notifier *InventoryNotifier,
	clock Clock,
) *SaleUsecase {
	return &SaleUsecase{
		tx:        tx,
		products:  products,
		inventory: inventory,
		strategy:  strategy,
		notifier:  notifier,
		clock:     clock,
	}
}

// カートの1行
type SaleLine struct {
	ProductCode string `json:"product_code"`
	Quantity    int64  `json:"quantity"`
}

type ProcessSaleInput struct {
	Lines        []SaleLine
	CashTendered decimal.Decimal
	Channel      model.SaleChannel
	CustomerID   string
}

// 販売処理。前半で全行を検証し（副作用ゼロ）、後半で一括して書き換える。
// 書き換えは1トランザクション。途中でバッチ台帳の不整合を検知したら
// 全体をロールバックし、BatchExhaustionErrorとして報告する。
func (u *SaleUsecase) ProcessSale(ctx context.Context, in ProcessSaleInput) (model.Bill, error) {
	if len(in.Lines) == 0 {
		return model.Bill{}, &ValidationError{Message: "sale must have at least one item"}
	}
	if in.CashTendered.IsNegative() {
		return model.Bill{}, &ValidationError{Message: "cash tendered cannot be negative"}
	}
	switch in.Channel {
	case model.SaleChannelCounter, model.SaleChannelOnline:
	default:
		return model.Bill{}, &ValidationError{Message: "invalid sale channel"}
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return model.Bill{}, &ValidationError{Message: "line quantity must be positive"}
		}
	}

	//検証フェーズ。ここまでで失敗してもどこも変わっていない
	items := make([]model.BillItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		p, err := u.products.FindByCode(ctx, line.ProductCode)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Bill{}, &ProductNotFoundError{Code: line.ProductCode}
		}
		if err != nil {
			return model.Bill{}, err
		}

		inv, err := u.inventory.FindByProductCode(ctx, line.ProductCode)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Bill{}, &InventoryNotFoundError{Code: line.ProductCode}
		}
		if err != nil {
			return model.Bill{}, err
		}

		available := inv.OnlineQty
		if in.Channel == model.SaleChannelCounter {
			available = inv.ShelfQty
		}
		if available < line.Quantity {
			return model.Bill{}, &InsufficientStockError{
				Code:      p.Code,
				Available: available,
				Requested: line.Quantity,
			}
		}

		//会計時点のスナップショット
		items = append(items, model.BillItem{
			ProductCode: p.Code,
			ProductName: p.Name,
			Unit:        p.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			DiscountPct: p.DiscountPct,
		})
	}

	var bill model.Bill
	var changed []model.Inventory

	//書き換えフェーズはトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		serial, err := r.Bills().NextSerialNumber(ctx)
		if err != nil {
			return err
		}

		b, err := model.NewBill(serial, u.clock.Now(), items, in.CashTendered, in.Channel, in.CustomerID)
		if errors.Is(err, model.ErrInsufficientCash) {
			return &ValidationError{Message: "cash tendered must cover the total"}
		}
		if err != nil {
			return err
		}

		saved, err := r.Bills().Save(ctx, b)
		if err != nil {
			return err
		}

		for _, line := range in.Lines {
			//行ロック付きで読み直す。同一商品の同時販売はここで直列化され、
			//検証フェーズ以降に他の会計が在庫を消費していれば下の再チェックで弾く
			inv, err := r.Inventory().FindByProductCodeForUpdate(ctx, line.ProductCode)
			if err != nil {
				return err
			}

			if in.Channel == model.SaleChannelCounter {
				if err := inv.ReduceFromShelf(line.Quantity); err != nil {
					return &InsufficientStockError{
						Code:      line.ProductCode,
						Available: inv.ShelfQty,
						Requested: line.Quantity,
					}
				}
				//カウンター販売だけがバッチ台帳から引き当てる
				remaining, err := drainBatches(ctx, r, u.strategy, line.ProductCode, line.Quantity)
				if err != nil {
					return err
				}
				if remaining > 0 {
					return &BatchExhaustionError{Code: line.ProductCode, Remaining: remaining}
				}
			} else {
				//オンライン販売はonlineQtyのみ。バッチは移動時に消費済みの前提
				if err := inv.ReduceFromOnline(line.Quantity); err != nil {
					return &InsufficientStockError{
						Code:      line.ProductCode,
						Available: inv.OnlineQty,
						Requested: line.Quantity,
					}
				}
			}

			if err := r.Inventory().Update(ctx, inv); err != nil {
				return err
			}

			serialCopy := saved.Serial
			if err := r.Movements().Create(ctx, model.StockMovement{
				ProductCode: line.ProductCode,
				Kind:        model.MovementSale,
				Quantity:    line.Quantity,
				BillSerial:  &serialCopy,
			}); err != nil {
				return err
			}

			changed = append(changed, inv)
		}

		bill = saved
		return nil
	})
	if err != nil {
		return model.Bill{}, err
	}

	//コミット後に行ごとの変化を同期通知
	for _, inv := range changed {
		u.notifier.NotifyChanged(inv)
	}

	return bill, nil
}

// バッチ台帳からneededを引き当てる。毎回スナップショットを取り直して
// 選択戦略に渡す。引当先が尽きたら残数を返す（エラー型は呼び出し側が決める）。
func drainBatches(ctx context.Context, r repo.TxRepos, strategy StockSelectionStrategy, code string, needed int64) (int64, error) {
	remaining := needed
	for remaining > 0 {
		batches, err := r.StockBatches().ListByProduct(ctx, code)
		if err != nil {
			return remaining, err
		}

		selected := strategy.SelectBatch(batches)
		if selected == nil {
			return remaining, nil
		}

		take := remaining
		if selected.Quantity < take {
			take = selected.Quantity
		}
		if err := selected.ReduceQuantity(take); err != nil {
			return remaining, err
		}
		if err := r.StockBatches().UpdateQuantity(ctx, selected.BatchID, selected.Quantity); err != nil {
			return remaining, err
		}

		remaining -= take
	}
	return 0, nil
}
