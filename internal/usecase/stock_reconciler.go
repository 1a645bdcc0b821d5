package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/sirupsen/logrus"
)

// StockReconciler はバックエンド在庫を書き換える唯一の窓口。
//
// 予約は「最後に取得した在庫 − 数量」を絶対値で書き込む。
// サーバー側の原子的な減算ではないので、同時に買う人がいると競合する
// （1セッション1クライアント前提の既知の穴）。
// 書き込みに成功した値はすぐスナップショットに反映する。
// 成功後のカタログ再取得は呼び出し側の責任。
type StockReconciler struct {
	gateway repo.StockGateway
	stock   StockLedger
	tokens  TokenSource
	log     *logrus.Entry
}

func NewStockReconciler(gateway repo.StockGateway, stock StockLedger, tokens TokenSource, log *logrus.Entry) *StockReconciler {
	return &StockReconciler{
		gateway: gateway,
		stock:   stock,
		tokens:  tokens,
		log:     log.WithField("component", "stock_reconciler"),
	}
}

// 在庫を予約（減らす）
func (r *StockReconciler) Reserve(ctx context.Context, productID int64, qty int64) error {
	if qty < 1 {
		return NewValidationError("quantity", "must be a positive integer")
	}

	known, err := r.knownStock(productID)
	if err != nil {
		return err
	}
	if qty > known {
		return NewInsufficientStockError(productID, qty, known)
	}

	return r.apply(ctx, model.NewStockAdjustmentIntent(productID, known, -qty))
}

// 在庫を解放（戻す）
func (r *StockReconciler) Release(ctx context.Context, productID int64, qty int64) error {
	if qty < 1 {
		return NewValidationError("quantity", "must be a positive integer")
	}

	known, err := r.knownStock(productID)
	if err != nil {
		return err
	}

	return r.apply(ctx, model.NewStockAdjustmentIntent(productID, known, qty))
}

func (r *StockReconciler) knownStock(productID int64) (int64, error) {
	p, ok := r.stock.Find(productID)
	if !ok {
		return 0, NewValidationError("product_id", "unknown product")
	}
	return p.Stock, nil
}

// 1回だけ書き込む。失敗してもリトライしない。
func (r *StockReconciler) apply(ctx context.Context, intent model.StockAdjustmentIntent) error {
	token, err := r.tokens.Token(ctx)
	if err != nil {
		return err
	}

	log := r.log.WithFields(logrus.Fields{
		"product_id":   intent.ProductID,
		"delta":        intent.Delta,
		"known_stock":  intent.KnownStock,
		"target_stock": intent.TargetStock,
	})

	if err := r.gateway.SetStock(ctx, token, intent.ProductID, intent.TargetStock); err != nil {
		log.WithError(err).Warn("stock adjustment failed")
		return err
	}

	r.stock.ApplyStock(intent.ProductID, intent.TargetStock)
	log.Info("stock adjusted")
	return nil
}
