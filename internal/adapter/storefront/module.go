package storefront

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/config"
)

// Module exposes the storefront client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.StorefrontURL == "" {
		return NewNoopClient(p.Logger), nil
	}
	return NewHTTPClient(p.Config.StorefrontURL, p.Logger)
}
