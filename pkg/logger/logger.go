// Package logger owns the process-wide zap logger. Everything logs through
// the package helpers so the encoding and output policy live in one place.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. Tests swap it for zap.NewNop().
var Log *zap.Logger

// Config selects level, output location and encoding per environment.
type Config struct {
	Level       string
	LogDir      string
	Environment string
}

// Initialize builds the global logger. In development the output is colored
// console encoding on stdout; in production it is JSON, duplicated into
// LogDir when one is configured.
func Initialize(cfg Config) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Environment == "development" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.OutputPaths = []string{"stdout"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.Environment == "production" && cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = append(zc.OutputPaths, filepath.Join(cfg.LogDir, "app.log"))
		zc.ErrorOutputPaths = append(zc.ErrorOutputPaths, filepath.Join(cfg.LogDir, "error.log"))
	}

	built, err := zc.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	Log = built
	return nil
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes buffered entries; called on shutdown.
func Sync() {
	_ = Log.Sync()
}

// LogHTTPRequest writes one access-log line per request. The level follows
// the response class so alerting can key on level alone.
func LogHTTPRequest(method, path string, statusCode int, duration float64, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", statusCode),
		zap.Float64("duration", duration),
	}, fields...)

	switch {
	case statusCode >= 500:
		Error("HTTP request failed", all...)
	case statusCode >= 400:
		Warn("HTTP request client error", all...)
	default:
		Info("HTTP request", all...)
	}
}

// LogAPICall records one outbound call to an external service (the email
// provider, the submission trigger).
func LogAPICall(service, operation, status string, duration float64, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.String("service", service),
		zap.String("operation", operation),
		zap.String("status", status),
		zap.Float64("duration", duration),
	}, fields...)

	if status == "error" {
		Error("External call failed", all...)
	} else {
		Info("External call", all...)
	}
}
