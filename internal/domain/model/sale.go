package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売明細（商品IDと数量のみ）
type SaleLine struct {
	ProductID int64 `json:"producto_id"`
	Quantity  int64 `json:"cantidad"`
}

// 1回の会計で送る販売リクエスト
type SaleRequest struct {
	Lines []SaleLine      `json:"ventas"`
	Total decimal.Decimal `json:"total"`
}

// カートから販売リクエストを作る
func NewSaleRequest(c Cart) SaleRequest {
	lines := make([]SaleLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, SaleLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return SaleRequest{Lines: lines, Total: c.Total()}
}

// バックエンドが返す販売結果
type SaleReceipt struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
