package orderkey

import (
	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/config"
)

// Module provides the order key strategy via fx.
var Module = fx.Provide(newStrategy)

func newStrategy(cfg *config.Config) *Strategy {
	return NewStrategy(cfg.OrderKeySecret)
}
