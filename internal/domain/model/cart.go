package model

import "github.com/shopspring/decimal"

// カート本体。
// 1商品につき明細は1つ（同じ商品の追加は数量加算）。
type Cart struct {
	Items []CartLineItem `json:"items"`
}

// 商品IDの明細位置（無ければ -1）
func (c Cart) IndexOf(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 合計点数
func (c Cart) Count() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// 呼び出し側に渡す用のコピー
func (c Cart) Clone() Cart {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// 数量を加算（無ければ末尾に追加）。qty は正であること。
func (c *Cart) Increment(p Product, qty int64) {
	if i := c.IndexOf(p.ID); i >= 0 {
		c.Items[i].Quantity += qty
		c.Items[i].Recompute()
		return
	}
	c.Items = append(c.Items, NewCartLineItem(p, qty))
}

// 数量を減算。0になった明細は削除する。
func (c *Cart) Decrement(index int, qty int64) {
	it := &c.Items[index]
	it.Quantity -= qty
	if it.Quantity <= 0 {
		c.Items = append(c.Items[:index], c.Items[index+1:]...)
		return
	}
	it.Recompute()
}

// 保存データを読み込んだ後の整合性チェック。
// 数量0以下の明細は捨てて、同じ商品の明細は先頭にまとめる（単価は先頭のもの）。
// subtotalは再計算する。
func (c *Cart) Normalize() {
	kept := make([]CartLineItem, 0, len(c.Items))
	pos := make(map[int64]int, len(c.Items))
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := pos[it.ProductID]; ok {
			kept[i].Quantity += it.Quantity
			continue
		}
		pos[it.ProductID] = len(kept)
		kept = append(kept, it)
	}
	for i := range kept {
		kept[i].Recompute()
	}
	c.Items = kept
}
