package app

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. APP_ENV=dev gets the console
// encoder, anything else JSON.
func NewLogger(appEnv, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if appEnv == "dev" {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}
