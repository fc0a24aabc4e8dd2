package sign

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/reqpay/reqpay/internal/config"
)

// Module exposes the sign service client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.SignServiceURL, p.Config.VerifyTimeout, p.Logger)
}
