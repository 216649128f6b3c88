package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type TransferType string

const (
	TransferStoreToShelf  TransferType = "STORE_TO_SHELF"
	TransferStoreToOnline TransferType = "STORE_TO_ONLINE"
)

type TransferUsecase struct {
	tx       repo.TransactionManager
	strategy StockSelectionStrategy
	notifier *InventoryNotifier
}

func NewTransferUsecase(
	tx repo.TransactionManager,
	strategy StockSelectionStrategy,
	notifier *InventoryNotifier,
) *TransferUsecase {
	return &TransferUsecase{tx: tx, strategy: strategy, notifier: notifier}
}

// 倉庫→棚／倉庫→オンラインの移動。移動先に関係なくバッチ台帳から
// 同じ選択アルゴリズムで引き当てる。書き換えは1トランザクション。
func (u *TransferUsecase) TransferStock(ctx context.Context, code string, qty int64, transferType TransferType) error {
	if qty <= 0 {
		return &ValidationError{Message: "quantity must be positive"}
	}
	switch transferType {
	case TransferStoreToShelf, TransferStoreToOnline:
	default:
		return &ValidationError{Message: "unknown transfer type"}
	}

	var changed model.Inventory

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック付きで読む。同一商品の販売・移動とはここで直列化され、
		//後続のバッチ引当も同じ商品については並走しない
		inv, err := r.Inventory().FindByProductCodeForUpdate(ctx, code)
		if errors.Is(err, repo.ErrNotFound) {
			return &InventoryNotFoundError{Code: code}
		}
		if err != nil {
			return err
		}

		if inv.StoreQty < qty {
			return &InsufficientStoreQuantityError{
				Code:      code,
				Available: inv.StoreQty,
				Requested: qty,
			}
		}

		remaining, err := drainBatches(ctx, r, u.strategy, code, qty)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return &NoAvailableBatchError{Code: code, Remaining: remaining}
		}

		kind := model.MovementTransferShelf
		if transferType == TransferStoreToOnline {
			kind = model.MovementTransferOnline
			err = inv.TransferStoreToOnline(qty)
		} else {
			err = inv.TransferStoreToShelf(qty)
		}
		if err != nil {
			return err
		}

		if err := r.Inventory().Update(ctx, inv); err != nil {
			return err
		}

		if err := r.Movements().Create(ctx, model.StockMovement{
			ProductCode: code,
			Kind:        kind,
			Quantity:    qty,
		}); err != nil {
			return err
		}

		changed = inv
		return nil
	})
	if err != nil {
		return err
	}

	u.notifier.NotifyChanged(changed)
	return nil
}
