package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// 会計の状態
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "IDLE"
	CheckoutSubmitting CheckoutState = "SUBMITTING"
	CheckoutCompleted  CheckoutState = "COMPLETED"
	CheckoutFailed     CheckoutState = "FAILED"
)

// 会計結果
type CheckoutResult struct {
	AttemptID    string            `json:"attempt_id"`
	State        CheckoutState     `json:"state"`
	Receipt      model.SaleReceipt `json:"receipt"`
	Total        decimal.Decimal   `json:"total"`
	Lines        int               `json:"lines"`
	Invoice      *model.Document   `json:"invoice,omitempty"`
	InvoiceError string            `json:"invoice_error,omitempty"`
}

// 直近の会計の状態
type CheckoutStatus struct {
	AttemptID string        `json:"attempt_id,omitempty"`
	State     CheckoutState `json:"state"`
	Error     string        `json:"error,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CheckoutUsecase はカート全体を1回の販売として送る。
//
// 成功：請求書を作ってからカートを空にする（在庫はもう予約済みなので触らない）。
// 失敗：カートも予約もそのまま残す。ユーザーがもう一度会計できる。
type CheckoutUsecase struct {
	cart     *CartUsecase
	sales    repo.SaleGateway
	tokens   TokenSource
	renderer InvoiceRenderer
	gate     *OperationGate
	idGen    IDGenerator
	clock    Clock
	log      *logrus.Entry

	mu     sync.RWMutex
	status CheckoutStatus
}

// DI
func NewCheckoutUsecase(
	cart *CartUsecase,
	sales repo.SaleGateway,
	tokens TokenSource,
	renderer InvoiceRenderer,
	gate *OperationGate,
	idGen IDGenerator,
	clock Clock,
	log *logrus.Entry,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cart:     cart,
		sales:    sales,
		tokens:   tokens,
		renderer: renderer,
		gate:     gate,
		idGen:    idGen,
		clock:    clock,
		log:      log.WithField("component", "checkout"),
		status:   CheckoutStatus{State: CheckoutIdle, UpdatedAt: clock.Now()},
	}
}

func (u *CheckoutUsecase) Status() CheckoutStatus {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.status
}

func (u *CheckoutUsecase) State() CheckoutState {
	return u.Status().State
}

// 会計実行。自動リトライはしない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, customerName string) (CheckoutResult, error) {
	release, err := u.gate.Acquire("checkout")
	if err != nil {
		return CheckoutResult{}, err
	}
	defer release()

	// Idleから出る前のチェック（通信しない）
	cart := u.cart.Snapshot()
	if cart.IsEmpty() {
		return CheckoutResult{}, &EmptyCartError{}
	}
	token, err := u.tokens.Token(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}

	customerName = strings.TrimSpace(customerName)
	attemptID := u.idGen.NewID()
	req := model.NewSaleRequest(cart)
	log := u.log.WithFields(logrus.Fields{
		"attempt_id": attemptID,
		"lines":      len(req.Lines),
		"total":      req.Total.StringFixed(2),
	})

	u.setStatus(attemptID, CheckoutSubmitting, nil)
	log.Info("submitting sale")

	receipt, err := u.sales.CreateSale(ctx, token, attemptID, req)
	if err != nil {
		// カートも予約もそのまま（もう一度会計できる）
		u.setStatus(attemptID, CheckoutFailed, err)
		log.WithError(err).Warn("sale submission failed")
		return CheckoutResult{}, err
	}

	u.setStatus(attemptID, CheckoutCompleted, nil)
	log.WithField("sale_id", receipt.ID).Info("sale completed")

	result := CheckoutResult{
		AttemptID: attemptID,
		State:     CheckoutCompleted,
		Receipt:   receipt,
		Total:     req.Total,
		Lines:     len(req.Lines),
	}

	doc, err := u.renderer.Render(ctx, cart, customerName)
	if err != nil {
		// 販売は確定済みなのでカートはこのあと空にする
		log.WithError(err).Error("render invoice failed")
		result.InvoiceError = err.Error()
	} else {
		result.Invoice = &doc
	}

	if err := u.cart.Clear(ctx); err != nil {
		return result, err
	}
	return result, nil
}

func (u *CheckoutUsecase) setStatus(attemptID string, state CheckoutState, err error) {
	st := CheckoutStatus{AttemptID: attemptID, State: state, UpdatedAt: u.clock.Now()}
	if err != nil {
		st.Error = err.Error()
	}

	u.mu.Lock()
	u.status = st
	u.mu.Unlock()
}
