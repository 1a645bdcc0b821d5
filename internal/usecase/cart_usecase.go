package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartUsecase はカートの持ち主。
// 追加・削除は「先に在庫を予約/解放 → 成功したときだけカートを変更して保存」の順。
// カートに出ている数量は必ずバックエンドで予約済み。
type CartUsecase struct {
	store    repo.LocalCartRepository
	stock    StockReservation
	catalog  CatalogRefresher
	products StockSource
	gate     *OperationGate
	log      *logrus.Entry

	mu   sync.RWMutex
	cart model.Cart
}

func NewCartUsecase(
	store repo.LocalCartRepository,
	stock StockReservation,
	catalog CatalogRefresher,
	products StockSource,
	gate *OperationGate,
	log *logrus.Entry,
) *CartUsecase {
	return &CartUsecase{
		store:    store,
		stock:    stock,
		catalog:  catalog,
		products: products,
		gate:     gate,
		log:      log.WithField("component", "cart"),
	}
}

// CartItemResponse は画面に返す明細
type CartItemResponse struct {
	Index     int             `json:"index"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse は画面に返すカート
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Count int64              `json:"count"`
	Total decimal.Decimal    `json:"total"`
}

// セッション開始時に保存済みカートを読み込む。
// 読めなかったときは空カートで始めてエラーを返す。
func (u *CartUsecase) Load(ctx context.Context) error {
	cart, err := u.store.Load(ctx)
	if err != nil {
		u.set(model.Cart{})
		u.log.WithError(err).Error("load cart failed")
		return err
	}

	cart.Normalize()
	u.set(cart)
	u.log.WithField("lines", len(cart.Items)).Debug("cart loaded")
	return nil
}

// 現在のカート（コピー）
func (u *CartUsecase) Snapshot() model.Cart {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cart.Clone()
}

func (u *CartUsecase) View() CartResponse {
	return buildCartResponse(u.Snapshot())
}

func (u *CartUsecase) Items() []model.CartLineItem {
	return u.Snapshot().Items
}

func (u *CartUsecase) Total() decimal.Decimal {
	return u.Snapshot().Total()
}

// 合計点数
func (u *CartUsecase) Count() int64 {
	return u.Snapshot().Count()
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) Add(ctx context.Context, p model.Product, qty int64) (CartResponse, error) {
	if qty < 1 {
		return CartResponse{}, NewValidationError("quantity", "must be a positive integer")
	}
	// 在庫超過は予約を呼ばずに返す
	if qty > p.Stock {
		return CartResponse{}, NewInsufficientStockError(p.ID, qty, p.Stock)
	}

	release, err := u.gate.Acquire("add")
	if err != nil {
		return CartResponse{}, err
	}
	defer release()

	if err := u.stock.Reserve(ctx, p.ID, qty); err != nil {
		return CartResponse{}, err
	}

	next := u.Snapshot()
	next.Increment(p, qty)

	if err := u.commit(ctx, next); err != nil {
		return CartResponse{}, err
	}
	u.log.WithFields(logrus.Fields{"product_id": p.ID, "quantity": qty}).Info("added to cart")

	u.refresh(ctx)
	return buildCartResponse(next), nil
}

// 最後に取得したカタログから商品を引いて追加
func (u *CartUsecase) AddByID(ctx context.Context, productID int64, qty int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewValidationError("product_id", "must be positive")
	}
	p, ok := u.products.Find(productID)
	if !ok {
		return CartResponse{}, NewValidationError("product_id", "unknown product")
	}
	return u.Add(ctx, p, qty)
}

// 明細から数量を減らす（全数なら明細ごと削除）。
func (u *CartUsecase) Remove(ctx context.Context, index int, qty int64) (CartResponse, error) {
	release, err := u.gate.Acquire("remove")
	if err != nil {
		return CartResponse{}, err
	}
	defer release()

	next := u.Snapshot()
	if index < 0 || index >= len(next.Items) {
		return CartResponse{}, NewValidationError("index", "out of range")
	}
	line := next.Items[index]
	if qty < 1 || qty > line.Quantity {
		return CartResponse{}, NewValidationError("quantity", "must be between 1 and the line quantity")
	}

	if err := u.stock.Release(ctx, line.ProductID, qty); err != nil {
		return CartResponse{}, err
	}

	next.Decrement(index, qty)

	if err := u.commit(ctx, next); err != nil {
		return CartResponse{}, err
	}
	u.log.WithFields(logrus.Fields{"product_id": line.ProductID, "quantity": qty}).Info("removed from cart")

	u.refresh(ctx)
	return buildCartResponse(next), nil
}

// カートを空にして保存する。
// 会計完了後・ログアウト時に使う。在庫は戻さない（販売に引き継がれている）。
func (u *CartUsecase) Clear(ctx context.Context) error {
	return u.commit(ctx, model.Cart{})
}

// メモリ上のカートを差し替えて保存。
// 予約はもう済んでいるので、保存に失敗してもメモリ上は新しいカートのままにする。
func (u *CartUsecase) commit(ctx context.Context, next model.Cart) error {
	u.set(next)
	if err := u.store.Save(ctx, next); err != nil {
		u.log.WithError(err).Error("persist cart failed")
		return err
	}
	return nil
}

func (u *CartUsecase) set(c model.Cart) {
	u.mu.Lock()
	u.cart = c.Clone()
	u.mu.Unlock()
}

// 予約・解放のあとに在庫を取り直す。失敗しても操作自体は成功扱い。
func (u *CartUsecase) refresh(ctx context.Context) {
	if _, err := u.catalog.FetchCatalog(ctx); err != nil {
		u.log.WithError(err).Warn("catalog refresh after stock change failed; local stock is stale")
	}
}

func buildCartResponse(c model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for i, it := range c.Items {
		items = append(items, CartItemResponse{
			Index:     i,
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return CartResponse{Items: items, Count: c.Count(), Total: c.Total()}
}
