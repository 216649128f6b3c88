package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type StockUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	movements repo.StockMovementRepository
	notifier  *InventoryNotifier
	clock     Clock
}

func NewStockUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	movements repo.StockMovementRepository,
	notifier *InventoryNotifier,
	clock Clock,
) *StockUsecase {
	return &StockUsecase{tx: tx, products: products, movements: movements, notifier: notifier, clock: clock}
}

// 入荷。バッチを作って倉庫在庫に積む。在庫レコードが無ければここで作る。
func (u *StockUsecase) ReceiveBatch(ctx context.Context, code string, qty int64, expiryDate time.Time) (model.StockBatch, error) {
	if qty <= 0 {
		return model.StockBatch{}, &ValidationError{Message: "quantity must be positive"}
	}

	purchaseDate := model.DateOf(u.clock.Now())
	if expiryDate.Before(purchaseDate) {
		return model.StockBatch{}, &ValidationError{Message: "expiry date cannot be before purchase date"}
	}

	if _, err := u.products.FindByCode(ctx, code); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.StockBatch{}, &ProductNotFoundError{Code: code}
		}
		return model.StockBatch{}, err
	}

	var batch model.StockBatch
	var changed model.Inventory

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		saved, err := r.StockBatches().Save(ctx, model.StockBatch{
			ProductCode:  code,
			PurchaseDate: purchaseDate,
			Quantity:     qty,
			ExpiryDate:   expiryDate,
		})
		if err != nil {
			return err
		}

		//行ロック付きで読む。同時入荷・販売との加算競合を防ぐ
		inv, err := r.Inventory().FindByProductCodeForUpdate(ctx, code)
		if errors.Is(err, repo.ErrNotFound) {
			//初回入荷でレコード作成
			inv = model.NewInventory(code)
			if err := inv.AddToStore(qty); err != nil {
				return err
			}
			if inv, err = r.Inventory().Save(ctx, inv); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := inv.AddToStore(qty); err != nil {
				return err
			}
			if err := r.Inventory().Update(ctx, inv); err != nil {
				return err
			}
		}

		if err := r.Movements().Create(ctx, model.StockMovement{
			ProductCode: code,
			Kind:        model.MovementReceipt,
			Quantity:    qty,
		}); err != nil {
			return err
		}

		batch = saved
		changed = inv
		return nil
	})
	if err != nil {
		return model.StockBatch{}, err
	}

	u.notifier.NotifyChanged(changed)
	return batch, nil
}

// 商品の在庫移動履歴（新しい順）
func (u *StockUsecase) ListMovements(ctx context.Context, code string) ([]model.StockMovement, error) {
	if _, err := u.products.FindByCode(ctx, code); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &ProductNotFoundError{Code: code}
		}
		return nil, err
	}
	return u.movements.ListByProduct(ctx, code)
}
