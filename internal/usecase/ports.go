package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 保存済みトークンを返す約束（無ければ通信せずに AuthError）
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// 最後に取得した在庫を返す約束
type StockSource interface {
	Find(productID int64) (model.Product, bool)
}

// 書き込んだ在庫をスナップショットに反映する約束。
// 再取得に失敗しても次の予約・解放は書き込んだ値から計算する。
type StockLedger interface {
	StockSource
	ApplyStock(productID int64, stock int64)
}

// 在庫の再取得（予約・解放のあとに呼ぶ）
type CatalogRefresher interface {
	FetchCatalog(ctx context.Context) ([]model.Product, error)
}

// 在庫の予約・解放
type StockReservation interface {
	Reserve(ctx context.Context, productID int64, qty int64) error
	Release(ctx context.Context, productID int64, qty int64) error
}

// 請求書の描画（外部の協力者）
type InvoiceRenderer interface {
	Render(ctx context.Context, cart model.Cart, customerName string) (model.Document, error)
}

// カートを空にする
type CartClearer interface {
	Clear(ctx context.Context) error
}

// 入力チェックの約束（通信する前に呼ぶ）
type InputValidator interface {
	ValidateLogin(username string, password string) error
	ValidateUserUpdate(userID int64, in model.UserUpdate) error
	ValidatePrice(productID int64, price decimal.Decimal) error
}
