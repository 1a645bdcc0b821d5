package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// バックエンドに送る形（合計は数値で送る）
type createSaleRequest struct {
	Lines []model.SaleLine `json:"ventas"`
	Total json.Number      `json:"total"`
}

// POST /ventas/
func (c *Client) CreateSale(ctx context.Context, token string, idempotencyKey string, req model.SaleRequest) (model.SaleReceipt, error) {
	body := createSaleRequest{
		Lines: req.Lines,
		Total: json.Number(req.Total.StringFixed(2)),
	}

	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var raw rawBody
	if err := c.doJSON(ctx, "create sale", http.MethodPost, "/ventas/", token, headers, body, &raw); err != nil {
		return model.SaleReceipt{}, err
	}

	// 2xxなら販売は記録済み。本文が読めなくても失敗にはしない。
	receipt, err := decodeSaleReceipt(raw)
	if err != nil {
		c.log.WithError(err).WithField("idempotency_key", idempotencyKey).Warn("sale receipt not readable")
	}
	// 合計を返さないバックエンドなら送った値を使う
	if receipt.Total.IsZero() {
		receipt.Total = req.Total
	}
	return receipt, nil
}

// id は文字列でも数値でもよい
type saleReceiptWire struct {
	ID        json.RawMessage `json:"id"`
	Total     json.RawMessage `json:"total"`
	CreatedAt string          `json:"created_at"`
}

func decodeSaleReceipt(raw []byte) (model.SaleReceipt, error) {
	var out model.SaleReceipt
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	var w saleReceiptWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return out, err
	}

	if len(w.ID) > 0 && string(w.ID) != "null" {
		var s string
		if err := json.Unmarshal(w.ID, &s); err == nil {
			out.ID = s
		} else {
			out.ID = strings.TrimSpace(string(w.ID))
		}
	}
	if len(w.Total) > 0 && string(w.Total) != "null" {
		var d decimal.Decimal
		if err := json.Unmarshal(w.Total, &d); err != nil {
			return out, err
		}
		out.Total = d
	}
	if w.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, w.CreatedAt)
		if err != nil {
			return out, err
		}
		out.CreatedAt = t
	}
	return out, nil
}
