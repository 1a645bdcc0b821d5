package model

import "github.com/shopspring/decimal"

// 画像が無い商品の代わりに出す画像
const DefaultProductImage = "images/default.jpg"

// 在庫がこれ未満なら「残りわずか」表示
const LowStockThreshold int64 = 5

// 商品のスナップショット。
// 正はバックエンド側にあり、クライアントは最後に取得した値を持つだけ。
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Stock     int64           `json:"stock"`
	Image     string          `json:"imagen,omitempty"`
	Category  Category        `json:"tipo"`
}

// 画像（未設定ならデフォルト）
func (p Product) ImageOrDefault() string {
	if p.Image == "" {
		return DefaultProductImage
	}
	return p.Image
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}
