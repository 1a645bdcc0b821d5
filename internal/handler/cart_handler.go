package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  *int64 `json:"quantity"` // 省略時は1個
}

// /cart, /cart/:index を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/cart", guard)

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("/:index", h.removeItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.View())
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// 0や負数はそのまま渡して ValidationError にする
	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddByID(c.Request().Context(), req.ProductID, qty)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// DELETE /cart/:index?quantity=n（省略時は明細の全数）
func (h *CartHandler) removeItem(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid index"})
	}

	var qty int64
	if v := c.QueryParam("quantity"); v != "" {
		qty, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
		}
	} else {
		items := h.uc.Snapshot().Items
		if index >= 0 && index < len(items) {
			qty = items[index].Quantity
		}
	}

	out, err := h.uc.Remove(c.Request().Context(), index, qty)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
