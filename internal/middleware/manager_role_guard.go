package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがMANAGERかどうかを確認します。

func ManagerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//EMPLOYEEは拒否、MANAGERだけ許可
			if role != "MANAGER" {
				return c.JSON(http.StatusForbidden, errorJSON("manager only"))
			}

			return next(c)
		}
	}
}
