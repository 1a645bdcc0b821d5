package model

// 在庫調整の意図（1回の調整呼び出しの間だけ存在し、保存しない）
// Delta は予約なら負、解放なら正。
type StockAdjustmentIntent struct {
	ProductID   int64
	Delta       int64
	KnownStock  int64
	TargetStock int64
}

func NewStockAdjustmentIntent(productID int64, knownStock int64, delta int64) StockAdjustmentIntent {
	return StockAdjustmentIntent{
		ProductID:   productID,
		Delta:       delta,
		KnownStock:  knownStock,
		TargetStock: knownStock + delta,
	}
}

func (i StockAdjustmentIntent) IsReservation() bool {
	return i.Delta < 0
}
