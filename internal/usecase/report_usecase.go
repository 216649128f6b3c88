package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 棚の数量が（棚＋倉庫）の30%を切ったら補充推奨
const reshelveThresholdPct = 0.30

type ReportUsecase struct {
	bills     repo.BillRepository
	inventory repo.InventoryRepository
	products  repo.ProductRepository
	batches   repo.StockBatchRepository
	clock     Clock
}

func NewReportUsecase(
	bills repo.BillRepository,
	inventory repo.InventoryRepository,
	products repo.ProductRepository,
	batches repo.StockBatchRepository,
	clock Clock,
) *ReportUsecase {
	return &ReportUsecase{bills: bills, inventory: inventory, products: products, batches: batches, clock: clock}
}

type DailySalesRow struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type DailySalesReport struct {
	Date         string          `json:"date"`
	BillCount    int             `json:"bill_count"`
	Rows         []DailySalesRow `json:"rows"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// 指定日の売上。商品ごとに数量と割引後売上を集計する
func (u *ReportUsecase) DailySales(ctx context.Context, day time.Time) (DailySalesReport, error) {
	bills, err := u.bills.ListByDate(ctx, day)
	if err != nil {
		return DailySalesReport{}, err
	}

	byCode := map[string]*DailySalesRow{}
	order := []string{}
	total := decimal.Zero

	for _, b := range bills {
		for _, it := range b.Items {
			row, ok := byCode[it.ProductCode]
			if !ok {
				row = &DailySalesRow{
					ProductCode: it.ProductCode,
					ProductName: it.ProductName,
					Revenue:     decimal.Zero,
				}
				byCode[it.ProductCode] = row
				order = append(order, it.ProductCode)
			}
			row.Quantity += it.Quantity
			row.Revenue = row.Revenue.Add(it.FinalPrice())
			total = total.Add(it.FinalPrice())
		}
	}

	rows := make([]DailySalesRow, 0, len(order))
	for _, code := range order {
		rows = append(rows, *byCode[code])
	}

	return DailySalesReport{
		Date:         day.Format("2006-01-02"),
		BillCount:    len(bills),
		Rows:         rows,
		TotalRevenue: total.Round(2),
	}, nil
}

type ReorderRow struct {
	ProductCode string `json:"product_code"`
	ShelfQty    int64  `json:"shelf_qty"`
	StoreQty    int64  `json:"store_qty"`
	OnlineQty   int64  `json:"online_qty"`
	Total       int64  `json:"total"`
}

// 合計が発注点未満の商品一覧
func (u *ReportUsecase) ReorderLevels(ctx context.Context) ([]ReorderRow, error) {
	invs, err := u.inventory.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ReorderRow, 0, len(invs))
	for _, inv := range invs {
		rows = append(rows, ReorderRow{
			ProductCode: inv.ProductCode,
			ShelfQty:    inv.ShelfQty,
			StoreQty:    inv.StoreQty,
			OnlineQty:   inv.OnlineQty,
			Total:       inv.TotalQuantity(),
		})
	}
	return rows, nil
}

type StockBatchRow struct {
	BatchID      string `json:"batch_id"`
	PurchaseDate string `json:"purchase_date"`
	ExpiryDate   string `json:"expiry_date"`
	Quantity     int64  `json:"quantity"`

	//負なら期限切れ
	DaysUntilExpiry int `json:"days_until_expiry"`
}

type StockReportRow struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Batches     []StockBatchRow `json:"batches"`
	Total       int64           `json:"total"`
}

// バッチ単位の在庫内訳
func (u *ReportUsecase) StockReport(ctx context.Context) ([]StockReportRow, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	rows := make([]StockReportRow, 0, len(products))
	for _, p := range products {
		batches, err := u.batches.ListByProduct(ctx, p.Code)
		if err != nil {
			return nil, err
		}

		row := StockReportRow{ProductCode: p.Code, ProductName: p.Name}
		for _, b := range batches {
			row.Batches = append(row.Batches, StockBatchRow{
				BatchID:         b.BatchID,
				PurchaseDate:    b.PurchaseDate.Format("2006-01-02"),
				ExpiryDate:      b.ExpiryDate.Format("2006-01-02"),
				Quantity:        b.Quantity,
				DaysUntilExpiry: b.DaysUntilExpiry(now),
			})
			row.Total += b.Quantity
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type ReshelveRow struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	ShelfQty    int64  `json:"shelf_qty"`
	StoreQty    int64  `json:"store_qty"`
	Recommended int64  `json:"recommended"`
}

// 1日の終わりに棚へ補充すべき商品。棚数量が（棚＋倉庫）の30%を
// 下回っていたら、その水準まで（倉庫残を上限に）移す量を推奨する。
func (u *ReportUsecase) Reshelve(ctx context.Context) ([]ReshelveRow, error) {
	invs, err := u.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := []ReshelveRow{}
	for _, inv := range invs {
		if inv.StoreQty == 0 {
			continue
		}

		totalAvailable := inv.ShelfQty + inv.StoreQty
		threshold := int64(math.Ceil(float64(totalAvailable) * reshelveThresholdPct))
		if inv.ShelfQty >= threshold {
			continue
		}

		p, err := u.products.FindByCode(ctx, inv.ProductCode)
		if err != nil {
			continue
		}

		recommended := threshold - inv.ShelfQty
		if recommended > inv.StoreQty {
			recommended = inv.StoreQty
		}

		rows = append(rows, ReshelveRow{
			ProductCode: inv.ProductCode,
			ProductName: p.Name,
			ShelfQty:    inv.ShelfQty,
			StoreQty:    inv.StoreQty,
			Recommended: recommended,
		})
	}
	return rows, nil
}

type BillReportRow struct {
	Serial     int64             `json:"serial"`
	BillDate   string            `json:"bill_date"`
	Channel    model.SaleChannel `json:"channel"`
	CustomerID string            `json:"customer_id,omitempty"`
	ItemCount  int               `json:"item_count"`
	Total      decimal.Decimal   `json:"total"`
}

// 指定日の全取引の一覧（レシート台帳）
func (u *ReportUsecase) BillReport(ctx context.Context, day time.Time) ([]BillReportRow, error) {
	bills, err := u.bills.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	rows := make([]BillReportRow, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, BillReportRow{
			Serial:     b.Serial,
			BillDate:   b.BillDate.Format("2006-01-02"),
			Channel:    b.Channel,
			CustomerID: b.CustomerID,
			ItemCount:  len(b.Items),
			Total:      b.Total,
		})
	}
	return rows, nil
}

// シリアル番号でレシートを1件引く（明細込み）
func (u *ReportUsecase) BillBySerial(ctx context.Context, serial int64) (model.Bill, error) {
	bill, err := u.bills.FindBySerial(ctx, serial)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bill{}, NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}
