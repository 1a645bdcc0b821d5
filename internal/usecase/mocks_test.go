package usecase_test

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type StockGatewayMock struct{ mock.Mock }

func (m *StockGatewayMock) SetStock(ctx context.Context, token string, productID int64, newStock int64) error {
	args := m.Called(ctx, token, productID, newStock)
	return args.Error(0)
}

type CatalogGatewayMock struct{ mock.Mock }

func (m *CatalogGatewayMock) ListProducts(ctx context.Context, token string) ([]model.Product, error) {
	args := m.Called(ctx, token)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

type SaleGatewayMock struct{ mock.Mock }

func (m *SaleGatewayMock) CreateSale(ctx context.Context, token string, idempotencyKey string, req model.SaleRequest) (model.SaleReceipt, error) {
	args := m.Called(ctx, token, idempotencyKey, req)
	r, _ := args.Get(0).(model.SaleReceipt)
	return r, args.Error(1)
}

type AuthGatewayMock struct{ mock.Mock }

func (m *AuthGatewayMock) Login(ctx context.Context, username string, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

type AdminGatewayMock struct{ mock.Mock }

func (m *AdminGatewayMock) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	args := m.Called(ctx, token)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *AdminGatewayMock) UpdateUser(ctx context.Context, token string, userID int64, in model.UserUpdate) (model.User, error) {
	args := m.Called(ctx, token, userID, in)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AdminGatewayMock) UpdatePrice(ctx context.Context, token string, productID int64, price decimal.Decimal) (model.Product, error) {
	args := m.Called(ctx, token, productID, price)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type StockReservationMock struct{ mock.Mock }

func (m *StockReservationMock) Reserve(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *StockReservationMock) Release(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type CatalogRefresherMock struct{ mock.Mock }

func (m *CatalogRefresherMock) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

type InvoiceRendererMock struct{ mock.Mock }

func (m *InvoiceRendererMock) Render(ctx context.Context, cart model.Cart, customerName string) (model.Document, error) {
	args := m.Called(ctx, cart, customerName)
	d, _ := args.Get(0).(model.Document)
	return d, args.Error(1)
}

type CredentialRepoMock struct{ mock.Mock }

func (m *CredentialRepoMock) Load(ctx context.Context) (model.Credential, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(model.Credential)
	return c, args.Error(1)
}

func (m *CredentialRepoMock) Save(ctx context.Context, cred model.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *CredentialRepoMock) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// =====================
// Fakes
// =====================

// 保存内容を覚えておくカート保存先
type fakeCartStore struct {
	mu      sync.Mutex
	saved   model.Cart
	saves   int
	loadErr error
	saveErr error
	onSave  func()
}

func (f *fakeCartStore) Load(ctx context.Context) (model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return model.Cart{}, f.loadErr
	}
	return f.saved.Clone(), nil
}

func (f *fakeCartStore) Save(ctx context.Context, cart model.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onSave != nil {
		f.onSave()
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = cart.Clone()
	f.saves++
	return nil
}

func (f *fakeCartStore) Saved() model.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved.Clone()
}

// 固定の商品を返す在庫参照
type fakeStockSource map[int64]model.Product

func (f fakeStockSource) Find(productID int64) (model.Product, bool) {
	p, ok := f[productID]
	return p, ok
}

func (f fakeStockSource) ApplyStock(productID int64, stock int64) {
	if p, ok := f[productID]; ok {
		p.Stock = stock
		f[productID] = p
	}
}

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqID struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func (s *seqID) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids[s.next%len(s.ids)]
	s.next++
	return id
}

// 呼び出し順の記録
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// =====================
// helper
// =====================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func productA() model.Product {
	return model.Product{ID: 1, Name: "A", UnitPrice: dec("10.00"), Stock: 5, Category: model.CategorySweets}
}

func productB() model.Product {
	return model.Product{ID: 2, Name: "B", UnitPrice: dec("5.50"), Stock: 3, Category: model.CategoryToys}
}
