package server

import (
	"shop/internal/config"
	"shop/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Good       *handler.GoodHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	h.Auth.RegisterRoutes(e)
	h.Good.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)

	return e
}
