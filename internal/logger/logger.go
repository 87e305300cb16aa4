package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/workwise/backend/config"
)

// New builds the application logger for the given environment.
// Development and test get a human readable console logger at debug level,
// everything else gets JSON at info level.
func New(env config.Environment) (*zap.Logger, error) {
	var cfg zap.Config

	switch env {
	case config.Development, config.Test:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("env", env.String())), nil
}

// Must is New that panics on error.
func Must(env config.Environment) *zap.Logger {
	log, err := New(env)
	if err != nil {
		panic(err)
	}
	return log
}
