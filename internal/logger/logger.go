// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Options tunes the global logger.
type Options struct {
	// Env selects the encoder: "production" logs JSON, anything else logs
	// human-readable console output.
	Env string
	// File, when non-empty, tees every entry into a size-rotated log file.
	File string
}

// Init initializes the global logger for the given environment.
func Init(env string) {
	InitWithOptions(Options{Env: env})
}

// InitWithOptions initializes the global logger once. Later calls are no-ops.
func InitWithOptions(opts Options) {
	once.Do(func() {
		base, err := build(opts)
		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

func build(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if opts.File == "" {
		return base, nil
	}

	rotating := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	})
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		rotating,
		cfg.Level,
	)
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init(os.Getenv("ENV"))
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
