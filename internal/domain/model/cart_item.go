package model

import "github.com/shopspring/decimal"

// カートの明細
// 単価は追加時点のスナップショットで、あとから価格が変わっても追従しない。
type CartLineItem struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Image     string          `json:"image,omitempty"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// 商品から明細を作る（数量0ならsubtotalも0）
func NewCartLineItem(p Product, qty int64) CartLineItem {
	it := CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Image:     p.ImageOrDefault(),
		Quantity:  qty,
	}
	it.Recompute()
	return it
}

// subtotal = 単価 × 数量
func (it *CartLineItem) Recompute() {
	it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
