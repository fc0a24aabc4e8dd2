package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/adapter/sign"
	"github.com/reqpay/reqpay/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	newVerifyUseCase,
)

type verifyParams struct {
	fx.In

	Client sign.Client
	Config *config.Config
	Logger *slog.Logger
}

func newVerifyUseCase(p verifyParams) *VerifyUseCase {
	return NewVerifyUseCase(p.Client, p.Config.TestNetwork, int32(p.Config.AmountDecimals), p.Logger)
}
