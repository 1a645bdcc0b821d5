package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// GET /almacen/
func (c *Client) ListProducts(ctx context.Context, token string) ([]model.Product, error) {
	var products []model.Product
	if err := c.doJSON(ctx, "list products", http.MethodGet, "/almacen/", token, nil, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

type setStockRequest struct {
	Stock int64 `json:"stock"`
}

// PATCH /almacen/{id}/update-stock/（在庫の絶対値）
func (c *Client) SetStock(ctx context.Context, token string, productID int64, newStock int64) error {
	path := fmt.Sprintf("/almacen/%d/update-stock/", productID)
	return c.doJSON(ctx, "set stock", http.MethodPatch, path, token, nil, setStockRequest{Stock: newStock}, nil)
}

type updatePriceRequest struct {
	UnitPrice json.Number `json:"precio_unitario"`
}

// PATCH /almacen/{id}/update-precio/
func (c *Client) UpdatePrice(ctx context.Context, token string, productID int64, price decimal.Decimal) (model.Product, error) {
	path := fmt.Sprintf("/almacen/%d/update-precio/", productID)

	var p model.Product
	body := updatePriceRequest{UnitPrice: json.Number(price.StringFixed(2))}
	if err := c.doJSON(ctx, "update price", http.MethodPatch, path, token, nil, body, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}
