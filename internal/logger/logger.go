// Package logger owns the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init builds the global logger at the given level. Later calls are no-ops.
func Init(level string) error {
	var err error
	once.Do(func() {
		global, err = New(level)
	})
	return err
}

// Get returns the global logger, initializing it at the default level first
// if Init was never called.
func Get() *zap.Logger {
	if global == nil {
		_ = Init(defaultLevel())
	}
	return global
}

// Sync flushes buffered entries. Called on shutdown.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}

// New builds a standalone production logger at the given level. Unparseable
// levels fall back to info.
func New(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func defaultLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}
