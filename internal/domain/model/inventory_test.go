package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryAddAndReduce(t *testing.T) {
	inv := NewInventory("P001")

	assert.NoError(t, inv.AddToStore(100))
	assert.NoError(t, inv.AddToShelf(10))
	assert.NoError(t, inv.AddToOnline(5))

	assert.Equal(t, int64(115), inv.TotalQuantity())

	assert.NoError(t, inv.ReduceFromShelf(4))
	assert.Equal(t, int64(6), inv.ShelfQty)
	assert.NoError(t, inv.ReduceFromOnline(5))
	assert.Equal(t, int64(0), inv.OnlineQty)
}

func TestInventoryRejectsNonPositiveQuantity(t *testing.T) {
	inv := NewInventory("P001")

	assert.ErrorIs(t, inv.AddToShelf(0), ErrInvalidQuantity)
	assert.ErrorIs(t, inv.AddToStore(-1), ErrInvalidQuantity)
	assert.ErrorIs(t, inv.ReduceFromShelf(0), ErrInvalidQuantity)
}

func TestInventoryReduceBeyondAvailable(t *testing.T) {
	inv := NewInventory("P001")
	assert.NoError(t, inv.AddToShelf(3))

	err := inv.ReduceFromShelf(4)

	assert.ErrorIs(t, err, ErrInsufficientQuantity)
	//失敗した操作は数量を変えない
	assert.Equal(t, int64(3), inv.ShelfQty)
}

func TestInventoryTransferStoreToShelf(t *testing.T) {
	inv := NewInventory("P001")
	assert.NoError(t, inv.AddToStore(50))

	assert.NoError(t, inv.TransferStoreToShelf(20))

	assert.Equal(t, int64(30), inv.StoreQty)
	assert.Equal(t, int64(20), inv.ShelfQty)
	assert.Equal(t, int64(50), inv.TotalQuantity())
}

func TestInventoryTransferFailsAtomically(t *testing.T) {
	inv := NewInventory("P001")
	assert.NoError(t, inv.AddToStore(5))

	err := inv.TransferStoreToOnline(6)

	assert.ErrorIs(t, err, ErrInsufficientQuantity)
	assert.Equal(t, int64(5), inv.StoreQty)
	assert.Equal(t, int64(0), inv.OnlineQty)
}

func TestInventoryReorderLevelBoundary(t *testing.T) {
	inv := NewInventory("P001")
	assert.NoError(t, inv.AddToStore(50))

	//ちょうど50はまだ低在庫ではない
	assert.False(t, inv.IsBelowReorderLevel())

	assert.NoError(t, inv.ReduceFromStore(1))
	assert.True(t, inv.IsBelowReorderLevel())
}
