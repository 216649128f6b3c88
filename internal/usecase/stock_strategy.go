package usecase

import (
	"app/internal/domain/model"
)

// どのバッチから引き当てるかを決める。入力を変更せず、同じスナップショット
// に対して常に同じ結果を返すこと。引当先が無いときはnil。
type StockSelectionStrategy interface {
	SelectBatch(batches []model.StockBatch) *model.StockBatch
}

// 期限優先の引当。基本はFIFO（最も古い入荷）だが、より期限が近い別バッチが
// あればそちらを先に引き当てる。
type ExpiryPriorityStrategy struct {
	clock Clock
}

func NewExpiryPriorityStrategy(clock Clock) *ExpiryPriorityStrategy {
	return &ExpiryPriorityStrategy{clock: clock}
}

func (s *ExpiryPriorityStrategy) SelectBatch(batches []model.StockBatch) *model.StockBatch {
	avail := availableBatches(batches, s.clock)
	if len(avail) == 0 {
		return nil
	}

	// 同値（同じ日付）は入力順の先勝ち。ストアはpurchase_date, batch_id順で
	// 返すので、結果として若いbatch_idが選ばれる
	oldest := 0
	closest := 0
	for i := 1; i < len(avail); i++ {
		if avail[i].PurchaseDate.Before(avail[oldest].PurchaseDate) {
			oldest = i
		}
		if avail[i].ExpiryDate.Before(avail[closest].ExpiryDate) {
			closest = i
		}
	}

	// 別バッチの期限が厳密に早いときだけFIFOを覆す
	if closest != oldest && avail[closest].ExpiryDate.Before(avail[oldest].ExpiryDate) {
		b := avail[closest]
		return &b
	}

	b := avail[oldest]
	return &b
}

// 純粋なFIFO。常に最も古い入荷から引き当てる。
type FIFOStrategy struct {
	clock Clock
}

func NewFIFOStrategy(clock Clock) *FIFOStrategy {
	return &FIFOStrategy{clock: clock}
}

func (s *FIFOStrategy) SelectBatch(batches []model.StockBatch) *model.StockBatch {
	avail := availableBatches(batches, s.clock)
	if len(avail) == 0 {
		return nil
	}

	oldest := 0
	for i := 1; i < len(avail); i++ {
		if avail[i].PurchaseDate.Before(avail[oldest].PurchaseDate) {
			oldest = i
		}
	}

	b := avail[oldest]
	return &b
}

// 数量が残っていて期限切れでないバッチだけをコピーで返す
func availableBatches(batches []model.StockBatch, clock Clock) []model.StockBatch {
	today := clock.Now()

	avail := make([]model.StockBatch, 0, len(batches))
	for _, b := range batches {
		if b.Quantity > 0 && !b.IsExpiredOn(today) {
			avail = append(avail, b)
		}
	}
	return avail
}
