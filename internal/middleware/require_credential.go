package middleware

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 保存済みトークンが無い・期限切れならバックエンドに行かずに401。
func RequireCredential(tokens usecase.TokenSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := tokens.Token(c.Request().Context()); err != nil {
				if usecase.IsAuthError(err) {
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			return next(c)
		}
	}
}
