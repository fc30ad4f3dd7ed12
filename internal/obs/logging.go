// Package obs contains observability utilities such as logging.
package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. Release mode produces JSON output at
// info level; any other mode uses the human-readable development encoder at
// debug level.
func NewLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		return cfg.Build()
	}
	return zap.NewDevelopment()
}
