package server

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なもの
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Admin    *handler.AdminHandler
}

// /healthz と /session*, /categories 以外は保存済みトークンが必要
func RegisterRoutes(e *echo.Echo, h Handlers, tokens usecase.TokenSource) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	guard := middleware.RequireCredential(tokens)

	h.Session.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e, guard)
	h.Cart.RegisterRoutes(e, guard)
	h.Checkout.RegisterRoutes(e, guard)
	h.Admin.RegisterRoutes(e, guard)
}
