package server

import (
	"ninjashop/internal/config"
	"ninjashop/internal/handler"
	"ninjashop/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Wishlist *handler.WishlistHandler
	Order    *handler.OrderHandler
	Status   *handler.StatusHandler
}

// /api 配下にまとめて登録する
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, auth middleware.Authenticator) {
	api := e.Group("/api")

	// JWT検証 → セッション確認
	protected := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.SessionGuard(auth),
	}

	h.Auth.RegisterRoutes(api, protected...)
	h.Category.RegisterRoutes(api, protected...)
	h.Product.RegisterRoutes(api, protected...)
	h.Wishlist.RegisterRoutes(api, protected...)
	h.Order.RegisterRoutes(api, protected...)
	h.Status.RegisterRoutes(api, protected...)

	// アップロード画像
	e.Static("/media", cfg.MediaDir)
}
