package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthJWTがcontextに入れたroleが allowed のどれかか確認する。
func RoleGuard(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, r := range allowed {
				if r == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}
