package logger

import (
	"log/slog"
	"os"

	"github.com/reqpay/reqpay/internal/config"
)

// New creates a preconfigured slog.Logger. The verbosity switch is read once
// from configuration at construction time.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.LogVerbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
