package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin のHTTP
type AdminHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

type UpdatePriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/admin", guard)

	g.GET("/users", h.listUsers)
	g.PUT("/users/:id", h.updateUser)
	g.PATCH("/products/:id/price", h.updatePrice)
}

func (h *AdminHandler) listUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) updateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}

	var req model.UserUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	u, err := h.uc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) updatePrice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var req UpdatePriceRequest
	if err := c.Bind(&req); err != nil || req.Price == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdatePrice(c.Request().Context(), id, *req.Price)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}
