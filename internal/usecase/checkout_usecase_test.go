package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/logger"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	*cartFixture
	sales    *SaleGatewayMock
	renderer *InvoiceRendererMock
	uc       *usecase.CheckoutUsecase
}

func newCheckoutFixture(t *testing.T, tokens usecase.TokenSource) *checkoutFixture {
	t.Helper()

	cf := newCartFixture(t)
	f := &checkoutFixture{
		cartFixture: cf,
		sales:       new(SaleGatewayMock),
		renderer:    new(InvoiceRendererMock),
	}
	clock := fixedClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	ids := &seqID{ids: []string{"attempt-1", "attempt-2"}}
	f.uc = usecase.NewCheckoutUsecase(cf.uc, f.sales, tokens, f.renderer, cf.gate, ids, clock, logger.Discard())
	return f
}

// A 10.00×2 + B 5.50×1
func seedScenarioCart(t *testing.T, f *checkoutFixture) {
	t.Helper()
	seedCart(t, f.cartFixture, model.NewCartLineItem(productA(), 2), model.NewCartLineItem(productB(), 1))
}

func saleMatches(total string, lines int) interface{} {
	return mock.MatchedBy(func(req model.SaleRequest) bool {
		return req.Total.StringFixed(2) == total && len(req.Lines) == lines
	})
}

func TestCheckoutUsecase_InitialState(t *testing.T) {
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	assert.Equal(t, usecase.CheckoutIdle, f.uc.State())
}

func TestCheckoutUsecase_EmptyCart_NoCall(t *testing.T) {
	f := newCheckoutFixture(t, staticToken{token: "tok"})

	_, err := f.uc.Checkout(context.Background(), "Ana")
	assert.True(t, usecase.IsEmptyCart(err))
	assert.Equal(t, usecase.CheckoutIdle, f.uc.State())

	f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_NoToken_NoCall(t *testing.T) {
	f := newCheckoutFixture(t, staticToken{err: usecase.NewAuthError("credential not found")})
	seedScenarioCart(t, f)

	_, err := f.uc.Checkout(context.Background(), "Ana")
	assert.True(t, usecase.IsAuthError(err))
	assert.Equal(t, usecase.CheckoutIdle, f.uc.State())
	f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, f.cartFixture.uc.Snapshot().Items, 2)
}

func TestCheckoutUsecase_Success(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	seedScenarioCart(t, f)

	receipt := model.SaleReceipt{ID: "sale-1", Total: dec("25.50")}
	f.sales.On("CreateSale", mock.Anything, "tok", "attempt-1", saleMatches("25.50", 2)).Run(func(mock.Arguments) {
		assert.Equal(t, usecase.CheckoutSubmitting, f.uc.State())
	}).Return(receipt, nil).Once()

	doc := model.Document{FileName: "invoice-x.txt", ContentType: "text/plain", Body: []byte("ok")}
	f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(c model.Cart) bool {
		return c.Total().StringFixed(2) == "25.50" && len(c.Items) == 2
	}), "Ana").Return(doc, nil).Once()

	out, err := f.uc.Checkout(ctx, "  Ana ")
	require.NoError(t, err)

	assert.Equal(t, usecase.CheckoutCompleted, out.State)
	assert.Equal(t, "attempt-1", out.AttemptID)
	assert.Equal(t, "25.50", out.Total.StringFixed(2))
	assert.Equal(t, 2, out.Lines)
	require.NotNil(t, out.Invoice)
	assert.Equal(t, "invoice-x.txt", out.Invoice.FileName)

	// 会計後はカートが空で保存も空
	assert.True(t, f.cartFixture.uc.Snapshot().IsEmpty())
	assert.True(t, f.store.Saved().IsEmpty())
	assert.Equal(t, usecase.CheckoutCompleted, f.uc.State())

	// 在庫は会計では触らない
	f.stock.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)

	f.sales.AssertExpectations(t)
	f.renderer.AssertNumberOfCalls(t, "Render", 1)
}

func TestCheckoutUsecase_SaleFails_KeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	seedScenarioCart(t, f)

	netErr := usecase.NewNetworkError("create sale", 500, "sale rejected", nil)
	f.sales.On("CreateSale", mock.Anything, "tok", "attempt-1", mock.Anything).Return(model.SaleReceipt{}, netErr).Once()

	_, err := f.uc.Checkout(ctx, "Ana")
	assert.True(t, usecase.IsNetworkError(err))

	st := f.uc.Status()
	assert.Equal(t, usecase.CheckoutFailed, st.State)
	assert.Equal(t, "attempt-1", st.AttemptID)
	assert.Contains(t, st.Error, "sale rejected")

	assert.Len(t, f.cartFixture.uc.Snapshot().Items, 2)
	assert.Len(t, f.store.Saved().Items, 2)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_RetryAfterFailure_NewAttempt(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	seedScenarioCart(t, f)

	f.sales.On("CreateSale", mock.Anything, "tok", "attempt-1", mock.Anything).
		Return(model.SaleReceipt{}, usecase.NewNetworkError("create sale", 0, "", errors.New("timeout"))).Once()
	f.sales.On("CreateSale", mock.Anything, "tok", "attempt-2", saleMatches("25.50", 2)).
		Return(model.SaleReceipt{ID: "sale-2"}, nil).Once()
	f.renderer.On("Render", mock.Anything, mock.Anything, "Ana").Return(model.Document{FileName: "f.txt"}, nil).Once()

	_, err := f.uc.Checkout(ctx, "Ana")
	require.Error(t, err)

	out, err := f.uc.Checkout(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "sale-2", out.Receipt.ID)
	f.sales.AssertExpectations(t)
}

func TestCheckoutUsecase_RenderFails_StillCompletes(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	seedScenarioCart(t, f)

	f.sales.On("CreateSale", mock.Anything, "tok", "attempt-1", mock.Anything).Return(model.SaleReceipt{ID: "sale-1"}, nil).Once()
	f.renderer.On("Render", mock.Anything, mock.Anything, "Ana").Return(model.Document{}, errors.New("template broken")).Once()

	out, err := f.uc.Checkout(ctx, "Ana")
	require.NoError(t, err)
	assert.Nil(t, out.Invoice)
	assert.Contains(t, out.InvoiceError, "template broken")
	assert.True(t, f.cartFixture.uc.Snapshot().IsEmpty())
	assert.Equal(t, usecase.CheckoutCompleted, f.uc.State())
}

func TestCheckoutUsecase_Busy(t *testing.T) {
	f := newCheckoutFixture(t, staticToken{token: "tok"})
	seedScenarioCart(t, f)

	release, err := f.gate.Acquire("add")
	require.NoError(t, err)
	defer release()

	_, err = f.uc.Checkout(context.Background(), "Ana")
	assert.True(t, usecase.IsBusy(err))
	f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
