package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/adapter/sign"
	"github.com/reqpay/reqpay/internal/adapter/storefront"
	"github.com/reqpay/reqpay/internal/app"
	"github.com/reqpay/reqpay/internal/config"
	"github.com/reqpay/reqpay/internal/domain/repository"
	"github.com/reqpay/reqpay/internal/storage/postgres"
	"github.com/reqpay/reqpay/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		SignServiceURL:    "https://sign.example/checktxid",
		CheckoutURL:       "https://shop.example/checkout",
		OrderReceivedURL:  "https://shop.example/order-received",
		OrderKeySecret:    "secret",
		TestNetwork:       "rinkeby",
		AmountDecimals:    18,
		ReconcileInterval: time.Millisecond,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()
	signStub := test.SignClientStub{}
	storefrontStub := &test.StorefrontClientStub{}

	var facade *app.PaymentFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(sign.Client(signStub)),
			fx.Replace(storefront.Client(storefrontStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected payment facade instance")
	}
}
