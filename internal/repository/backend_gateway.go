package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// バックエンドAPIの約束。
// token はすべて呼び出し側が保存済みのものを渡す。

// 商品一覧
type CatalogGateway interface {
	ListProducts(ctx context.Context, token string) ([]model.Product, error)
}

// 在庫の絶対値を書き換える（差分ではない）
type StockGateway interface {
	SetStock(ctx context.Context, token string, productID int64, newStock int64) error
}

// 販売登録
type SaleGateway interface {
	CreateSale(ctx context.Context, token string, idempotencyKey string, req model.SaleRequest) (model.SaleReceipt, error)
}

// ログインしてトークンを受け取る
type AuthGateway interface {
	Login(ctx context.Context, username string, password string) (string, error)
}

// 管理用（ユーザーと価格）
type AdminGateway interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	UpdateUser(ctx context.Context, token string, userID int64, in model.UserUpdate) (model.User, error)
	UpdatePrice(ctx context.Context, token string, productID int64, price decimal.Decimal) (model.Product, error)
}
