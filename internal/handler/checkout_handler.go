package handler

import (
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 作成済み請求書の取り出し
type InvoiceStore interface {
	Open(name string) (model.Document, error)
}

// /checkout, /invoices のHTTP
type CheckoutHandler struct {
	uc       *usecase.CheckoutUsecase
	invoices InvoiceStore
	notFound error
}

// DI。notFound は InvoiceStore が「無い」ときに返すエラー。
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, invoices InvoiceStore, notFound error) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, invoices: invoices, notFound: notFound}
}

type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.POST("/checkout", h.checkout, guard)
	e.GET("/checkout/state", h.state, guard)
	e.GET("/invoices/:name", h.invoice, guard)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), req.CustomerName)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CheckoutHandler) state(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Status())
}

func (h *CheckoutHandler) invoice(c echo.Context) error {
	doc, err := h.invoices.Open(c.Param("name"))
	if err != nil {
		if h.notFound != nil && errors.Is(err, h.notFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}
