package server

import (
	"net/http"

	"kiosk/internal/handler"
	"kiosk/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Purchase    *handler.PurchaseHandler
	Transaction *handler.TransactionHandler
	Product     *handler.ProductHandler
	User        *handler.UserHandler
	Restock     *handler.RestockHandler
}

// RegisterRoutes は全ルートを登録する。管理系ルートにはJWTガードを挟む。
func RegisterRoutes(e *echo.Echo, h Handlers, adminJWTSecret string) {
	adminGuard := middleware.AuthJWT(adminJWTSecret)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.Purchase.RegisterRoutes(e)
	h.Transaction.RegisterRoutes(e, adminGuard)
	h.Product.RegisterRoutes(e, adminGuard)
	h.User.RegisterRoutes(e, adminGuard)
	h.Restock.RegisterRoutes(e, adminGuard)
}
