package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products, /categories のHTTP
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// 画面用の商品
type ProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Image    string          `json:"image"`
	Category model.Category  `json:"category"`
	InStock  bool            `json:"in_stock"`
	LowStock bool            `json:"low_stock"`
}

type ProductListResponse struct {
	Category model.Category    `json:"category"`
	Title    string            `json:"title"`
	Items    []ProductResponse `json:"items"`
}

type CategoryResponse struct {
	Key   model.Category `json:"key"`
	Title string         `json:"title"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.GET("/categories", h.categories)
	e.GET("/products", h.list, guard)
}

func (h *CatalogHandler) list(c echo.Context) error {
	category := model.Category(c.QueryParam("category"))
	if category != model.CategoryAll && !category.Known() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category"})
	}

	// 未取得か refresh=1 のときだけバックエンドに行く
	if c.QueryParam("refresh") == "1" || len(h.uc.Snapshot()) == 0 {
		if _, err := h.uc.FetchCatalog(c.Request().Context()); err != nil {
			return writeError(c, err)
		}
	}

	products := h.uc.Filter(category)
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}

	return c.JSON(http.StatusOK, ProductListResponse{
		Category: category,
		Title:    category.Title(),
		Items:    items,
	})
}

func (h *CatalogHandler) categories(c echo.Context) error {
	out := make([]CategoryResponse, 0, len(model.Categories)+1)
	out = append(out, CategoryResponse{Key: model.CategoryAll, Title: model.CategoryAll.Title()})
	for _, cat := range model.Categories {
		out = append(out, CategoryResponse{Key: cat, Title: cat.Title()})
	}
	return c.JSON(http.StatusOK, out)
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.UnitPrice,
		Stock:    p.Stock,
		Image:    p.ImageOrDefault(),
		Category: p.Category,
		InStock:  p.InStock(),
		LowStock: p.LowStock(),
	}
}
