package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

// CatalogUsecase はバックエンドの商品一覧の取得と、最後に取得したスナップショットの保持。
// 自分からは状態を変えず、取得結果をそのまま差し替えるだけ。
type CatalogUsecase struct {
	gateway repo.CatalogGateway
	tokens  TokenSource
	log     *logrus.Entry

	mu       sync.RWMutex
	products []model.Product
	byID     map[int64]int
}

func NewCatalogUsecase(gateway repo.CatalogGateway, tokens TokenSource, log *logrus.Entry) *CatalogUsecase {
	return &CatalogUsecase{
		gateway: gateway,
		tokens:  tokens,
		log:     log.WithField("component", "catalog"),
		byID:    map[int64]int{},
	}
}

// 商品一覧を取得してスナップショットを差し替える。リトライはしない。
func (u *CatalogUsecase) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	token, err := u.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	products, err := u.gateway.ListProducts(ctx, token)
	if err != nil {
		u.log.WithError(err).Warn("fetch catalog failed")
		return nil, err
	}

	u.install(products)
	u.log.WithField("count", len(products)).Debug("catalog fetched")
	return u.Snapshot(), nil
}

func (u *CatalogUsecase) install(products []model.Product) {
	byID := make(map[int64]int, len(products))
	cp := make([]model.Product, len(products))
	copy(cp, products)
	for i, p := range cp {
		byID[p.ID] = i
	}

	u.mu.Lock()
	u.products = cp
	u.byID = byID
	u.mu.Unlock()
}

// 最後に取得した商品一覧（コピー）
func (u *CatalogUsecase) Snapshot() []model.Product {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]model.Product, len(u.products))
	copy(out, u.products)
	return out
}

func (u *CatalogUsecase) Find(productID int64) (model.Product, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	i, ok := u.byID[productID]
	if !ok {
		return model.Product{}, false
	}
	return u.products[i], true
}

// 書き込み済みの在庫をスナップショットに反映する。知らない商品は無視。
func (u *CatalogUsecase) ApplyStock(productID int64, stock int64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	i, ok := u.byID[productID]
	if !ok {
		return
	}
	u.products[i].Stock = stock
}

// 最後に取得した在庫（知らない商品は ok=false）
func (u *CatalogUsecase) StockOf(productID int64) (int64, bool) {
	p, ok := u.Find(productID)
	return p.Stock, ok
}

// カテゴリで絞り込み。空なら全件。
func (u *CatalogUsecase) Filter(category model.Category) []model.Product {
	all := u.Snapshot()
	if category == model.CategoryAll {
		return all
	}

	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
