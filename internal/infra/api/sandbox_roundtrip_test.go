package api_test

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/api"
	"storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/sandbox"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type fixedIDs struct{ n int }

func (f *fixedIDs) NewID() string {
	f.n++
	return "attempt-" + strconv.Itoa(f.n)
}

type roundTrip struct {
	store    *sandbox.Store
	session  *usecase.SessionUsecase
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
}

// サンドボックスに対して本物のクライアントとユースケースを組み立てる
func newRoundTrip(t *testing.T) *roundTrip {
	t.Helper()
	return newRoundTripWith(t, nil)
}

// refresher が nil でなければカートの再取得先を差し替える
func newRoundTripWith(t *testing.T, refresher usecase.CatalogRefresher) *roundTrip {
	t.Helper()

	store := sandbox.NewStore()
	require.NoError(t, sandbox.Seed(store))
	srv := httptest.NewServer(sandbox.NewServer(store, []byte("roundtrip-secret"), logger.Discard()).Echo())
	t.Cleanup(srv.Close)

	log := logger.Discard()
	client := api.NewClient(api.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, log)

	kv := repository.NewMemoryKeyValueStore()
	gate := usecase.NewOperationGate()
	session := usecase.NewSessionUsecase(repository.NewCredentialKVRepository(kv), client, validator.NewInputValidator(), gate, realClock{}, log)
	catalog := usecase.NewCatalogUsecase(client, session, log)
	reconciler := usecase.NewStockReconciler(client, catalog, session, log)
	var refresh usecase.CatalogRefresher = catalog
	if refresher != nil {
		refresh = refresher
	}
	cart := usecase.NewCartUsecase(repository.NewCartKVRepository(kv), reconciler, refresh, catalog, gate, log)
	checkout := usecase.NewCheckoutUsecase(cart, client, session, renderStub{}, gate, &fixedIDs{}, realClock{}, log)

	ctx := context.Background()
	_, err := session.Login(ctx, "cliente", "cliente1234")
	require.NoError(t, err)
	_, err = catalog.FetchCatalog(ctx)
	require.NoError(t, err)

	return &roundTrip{store: store, session: session, catalog: catalog, cart: cart, checkout: checkout}
}

func TestRoundTrip_AddThenRemove_RestoresStock(t *testing.T) {
	ctx := context.Background()
	rt := newRoundTrip(t)

	before, _ := rt.store.Product(3)

	_, err := rt.cart.AddByID(ctx, 3, 3)
	require.NoError(t, err)

	reserved, _ := rt.store.Product(3)
	assert.Equal(t, before.Stock-3, reserved.Stock)
	known, _ := rt.catalog.StockOf(3)
	assert.Equal(t, before.Stock-3, known)

	_, err = rt.cart.Remove(ctx, 0, 3)
	require.NoError(t, err)

	after, _ := rt.store.Product(3)
	assert.Equal(t, before.Stock, after.Stock)
	assert.True(t, rt.cart.Snapshot().IsEmpty())
}

func TestRoundTrip_RefreshFailing_NoDrift(t *testing.T) {
	ctx := context.Background()
	rt := newRoundTripWith(t, failingRefresher{})

	before, _ := rt.store.Product(3)

	_, err := rt.cart.AddByID(ctx, 3, 3)
	require.NoError(t, err)
	_, err = rt.cart.AddByID(ctx, 3, 2)
	require.NoError(t, err)

	reserved, _ := rt.store.Product(3)
	assert.Equal(t, before.Stock-5, reserved.Stock)

	_, err = rt.cart.Remove(ctx, 0, 5)
	require.NoError(t, err)

	after, _ := rt.store.Product(3)
	assert.Equal(t, before.Stock, after.Stock)
	known, _ := rt.catalog.StockOf(3)
	assert.Equal(t, before.Stock, known)
}

func TestRoundTrip_InsufficientStock_NoWrite(t *testing.T) {
	ctx := context.Background()
	rt := newRoundTrip(t)

	// Caja de regalo: stock 2
	_, err := rt.cart.AddByID(ctx, 5, 3)
	assert.True(t, usecase.IsInsufficientStock(err))
	assert.Equal(t, 0, rt.store.StockWrites())
}

func TestRoundTrip_Checkout(t *testing.T) {
	ctx := context.Background()
	rt := newRoundTrip(t)

	_, err := rt.cart.AddByID(ctx, 3, 2)
	require.NoError(t, err)
	_, err = rt.cart.AddByID(ctx, 4, 1)
	require.NoError(t, err)

	// 1回目は失敗させてカートが残ることを確認
	rt.store.FailNextSales(1)
	_, err = rt.checkout.Checkout(ctx, "Ana")
	assert.True(t, usecase.IsNetworkError(err))
	assert.Len(t, rt.cart.Snapshot().Items, 2)

	out, err := rt.checkout.Checkout(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, usecase.CheckoutCompleted, out.State)
	assert.Equal(t, "61.00", out.Total.StringFixed(2))
	assert.True(t, rt.cart.Snapshot().IsEmpty())

	sales := rt.store.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, out.AttemptID, sales[0].IdempotencyKey)

	// 会計では在庫を書き換えない（予約済み）
	p3, _ := rt.store.Product(3)
	assert.Equal(t, int64(28), p3.Stock)
}

type failingRefresher struct{}

func (failingRefresher) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	return nil, usecase.NewNetworkError("list products", 503, "unavailable", nil)
}

type renderStub struct{}

func (renderStub) Render(ctx context.Context, cart model.Cart, customerName string) (model.Document, error) {
	return model.Document{FileName: "invoice.txt", ContentType: "text/plain", Body: []byte(customerName)}, nil
}
