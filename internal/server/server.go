package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Transfer *handler.TransferHandler
	Stock    *handler.StockHandler
	Report   *handler.ReportHandler
}

// ルートを組み立てて起動する
func Start(cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	//認証なし
	h.Auth.RegisterRoutes(e)

	//認証必須のグループ
	api := e.Group("", middleware.AuthJWT(cfg))
	managerOnly := middleware.ManagerRoleGuard()

	h.Product.RegisterRoutes(api, managerOnly)
	h.Sale.RegisterRoutes(api)
	h.Transfer.RegisterRoutes(api)
	h.Stock.RegisterRoutes(api)
	h.Report.RegisterRoutes(api)

	return e.Start(":" + cfg.Port)
}
