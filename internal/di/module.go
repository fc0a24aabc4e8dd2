package di

import (
	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/adapter/sign"
	"github.com/reqpay/reqpay/internal/adapter/storefront"
	"github.com/reqpay/reqpay/internal/app"
	"github.com/reqpay/reqpay/internal/config"
	"github.com/reqpay/reqpay/internal/logger"
	"github.com/reqpay/reqpay/internal/pkg/orderkey"
	"github.com/reqpay/reqpay/internal/server/http/handlers"
	"github.com/reqpay/reqpay/internal/server/http/router"
	"github.com/reqpay/reqpay/internal/storage/postgres"
	"github.com/reqpay/reqpay/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		orderkey.Module,
		postgres.Module,
		sign.Module,
		storefront.Module,
		usecase.Module,
		fx.Provide(func(facade *app.PaymentFacade) handlers.PaymentFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
