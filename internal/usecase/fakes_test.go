package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// =====================
// テスト用のインメモリストア
// =====================

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

type memStore struct {
	products   map[string]model.Product
	inventory  map[string]model.Inventory
	batches    []model.StockBatch
	bills      []model.Bill
	movements  []model.StockMovement
	nextBatch  int
	saleSerial int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]model.Product{},
		inventory: map[string]model.Inventory{},
	}
}

func (s *memStore) addBatch(code string, purchase, expiry time.Time, qty int64) string {
	s.nextBatch++
	id := fmt.Sprintf("batch-%03d", s.nextBatch)
	s.batches = append(s.batches, model.StockBatch{
		BatchID:      id,
		ProductCode:  code,
		PurchaseDate: purchase,
		Quantity:     qty,
		ExpiryDate:   expiry,
	})
	return id
}

func (s *memStore) batchQty(id string) int64 {
	for _, b := range s.batches {
		if b.BatchID == id {
			return b.Quantity
		}
	}
	return -1
}

func (s *memStore) totalBatchQty(code string) int64 {
	var total int64
	for _, b := range s.batches {
		if b.ProductCode == code {
			total += b.Quantity
		}
	}
	return total
}

// deep copy（トランザクションのロールバック用）
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.inventory {
		cp.inventory[k] = v
	}
	cp.batches = append([]model.StockBatch{}, s.batches...)
	cp.bills = append([]model.Bill{}, s.bills...)
	cp.movements = append([]model.StockMovement{}, s.movements...)
	cp.nextBatch = s.nextBatch
	cp.saleSerial = s.saleSerial
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.inventory = from.inventory
	s.batches = from.batches
	s.bills = from.bills
	s.movements = from.movements
	s.nextBatch = from.nextBatch
	s.saleSerial = from.saleSerial
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memProductRepo) FindByCode(ctx context.Context, code string) (model.Product, error) {
	p, ok := r.s.products[code]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.products[p.Code] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := r.s.products[p.Code]; !ok {
		return repo.ErrNotFound
	}
	r.s.products[p.Code] = p
	return nil
}

type memInventoryRepo struct {
	s *memStore

	//FindByProductCodeForUpdateの呼び出し回数（書き換えフェーズが
	//行ロック付きの読み取りを使う検証用）
	forUpdateCalls int
}

func (r *memInventoryRepo) FindByProductCode(ctx context.Context, code string) (model.Inventory, error) {
	inv, ok := r.s.inventory[code]
	if !ok {
		return model.Inventory{}, repo.ErrNotFound
	}
	return inv, nil
}

func (r *memInventoryRepo) FindByProductCodeForUpdate(ctx context.Context, code string) (model.Inventory, error) {
	r.forUpdateCalls++
	return r.FindByProductCode(ctx, code)
}

func (r *memInventoryRepo) Save(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	r.s.inventory[inv.ProductCode] = inv
	return inv, nil
}

func (r *memInventoryRepo) Update(ctx context.Context, inv model.Inventory) error {
	if _, ok := r.s.inventory[inv.ProductCode]; !ok {
		return repo.ErrNotFound
	}
	r.s.inventory[inv.ProductCode] = inv
	return nil
}

func (r *memInventoryRepo) ListBelowReorder(ctx context.Context) ([]model.Inventory, error) {
	out := []model.Inventory{}
	for _, inv := range r.s.inventory {
		if inv.IsBelowReorderLevel() {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

func (r *memInventoryRepo) ListAll(ctx context.Context) ([]model.Inventory, error) {
	out := []model.Inventory{}
	for _, inv := range r.s.inventory {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

type memBatchRepo struct {
	s *memStore

	//ListByProductの呼び出し回数（オンライン販売がバッチに触らない検証用）
	listCalls int
}

// 本物のストアと同じくpurchase_date, batch_id順で返す
func (r *memBatchRepo) ListByProduct(ctx context.Context, code string) ([]model.StockBatch, error) {
	r.listCalls++
	out := []model.StockBatch{}
	for _, b := range r.s.batches {
		if b.ProductCode == code {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].BatchID < out[j].BatchID
	})
	return out, nil
}

func (r *memBatchRepo) Save(ctx context.Context, b model.StockBatch) (model.StockBatch, error) {
	if b.BatchID == "" {
		r.s.nextBatch++
		b.BatchID = fmt.Sprintf("batch-%03d", r.s.nextBatch)
	}
	r.s.batches = append(r.s.batches, b)
	return b, nil
}

func (r *memBatchRepo) UpdateQuantity(ctx context.Context, batchID string, quantity int64) error {
	for i := range r.s.batches {
		if r.s.batches[i].BatchID == batchID {
			r.s.batches[i].Quantity = quantity
			return nil
		}
	}
	return repo.ErrNotFound
}

type memBillRepo struct{ s *memStore }

func (r *memBillRepo) NextSerialNumber(ctx context.Context) (int64, error) {
	return r.s.saleSerial + 1, nil
}

func (r *memBillRepo) Save(ctx context.Context, bill model.Bill) (model.Bill, error) {
	r.s.saleSerial = bill.Serial
	r.s.bills = append(r.s.bills, bill)
	return bill, nil
}

func (r *memBillRepo) FindBySerial(ctx context.Context, serial int64) (model.Bill, error) {
	for _, b := range r.s.bills {
		if b.Serial == serial {
			return b, nil
		}
	}
	return model.Bill{}, repo.ErrNotFound
}

func (r *memBillRepo) ListByDate(ctx context.Context, dayStart time.Time) ([]model.Bill, error) {
	start := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, dayStart.Location())
	end := start.Add(24 * time.Hour)
	out := []model.Bill{}
	for _, b := range r.s.bills {
		if !b.BillDate.Before(start) && b.BillDate.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(ctx context.Context, m model.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) ListByProduct(ctx context.Context, code string) ([]model.StockMovement, error) {
	out := []model.StockMovement{}
	for _, m := range r.s.movements {
		if m.ProductCode == code {
			out = append(out, m)
		}
	}
	return out, nil
}

type memTxRepos struct {
	products  *memProductRepo
	inventory *memInventoryRepo
	batches   *memBatchRepo
	bills     *memBillRepo
	movements *memMovementRepo
}

func (r *memTxRepos) Products() repo.ProductRepository        { return r.products }
func (r *memTxRepos) Inventory() repo.InventoryRepository     { return r.inventory }
func (r *memTxRepos) StockBatches() repo.StockBatchRepository { return r.batches }
func (r *memTxRepos) Bills() repo.BillRepository              { return r.bills }
func (r *memTxRepos) Movements() repo.StockMovementRepository { return r.movements }

// fnがエラーならスナップショットに巻き戻す（DBのrollback相当）
type memTxManager struct {
	s     *memStore
	repos *memTxRepos

	txCount int
}

func newMemTxManager(s *memStore) *memTxManager {
	return &memTxManager{
		s: s,
		repos: &memTxRepos{
			products:  &memProductRepo{s: s},
			inventory: &memInventoryRepo{s: s},
			batches:   &memBatchRepo{s: s},
			bills:     &memBillRepo{s: s},
			movements: &memMovementRepo{s: s},
		},
	}
}

func (tm *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.txCount++
	before := tm.s.snapshot()
	if err := fn(tm.repos); err != nil {
		tm.s.restore(before)
		return err
	}
	return nil
}

// =====================
// 通知を記録するリスナー
// =====================

type recordedEvent struct {
	kind string // "changed" / "low"
	code string
}

type recordListener struct {
	events []recordedEvent
}

func (l *recordListener) OnInventoryChanged(inv model.Inventory) {
	l.events = append(l.events, recordedEvent{kind: "changed", code: inv.ProductCode})
}

func (l *recordListener) OnLowStock(inv model.Inventory) {
	l.events = append(l.events, recordedEvent{kind: "low", code: inv.ProductCode})
}
