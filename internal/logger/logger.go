// Package logger configures the process-wide zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// File, when set, adds a rotating JSON file sink alongside the console.
	File string

	// Verbose switches the console and the file sink to debug level
	// regardless of Level.
	Verbose bool
}

// New builds a console logger, optionally teed into a rotating log file.
// The console encoder stays human-readable; the file sink is JSON.
func New(opts Options) *zap.Logger {
	level := parseLevel(opts.Level)
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	if opts.File == "" {
		return zap.New(consoleCore)
	}

	// lumberjack.Logger is already safe for concurrent use.
	fileSync := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileSync, level)

	return zap.New(zapcore.NewTee(consoleCore, fileCore))
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
