package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 会計完了時に作る請求書
type Invoice struct {
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	IssuedAt     time.Time       `json:"issued_at"`
	Lines        []CartLineItem  `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}

// ダウンロード用に描画した請求書
type Document struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"-"`
}
