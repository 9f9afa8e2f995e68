// Package logger builds the zap loggers used by inference drivers.  The
// preprocess and postprocess packages never log on their own behalf.
package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger at the given level ("debug", "info", "warn",
// "error").  Development loggers write human friendly console output,
// otherwise JSON is produced
func New(level string, development bool) (*zap.Logger, error) {

	lvl, err := zapcore.ParseLevel(level)

	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var cfg zap.Config

	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()

	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return l, nil
}
