// Package logger provides the shared zap sugared logger for tidewatch.
// The server logs to stdout; the terminal dashboard logs to a file so the
// alternate screen is never written over.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	mu     sync.Mutex
)

// Options controls how the global logger is built.
type Options struct {
	// Level is a zap level name ("debug", "info", ...). Empty falls back to LOG_LEVEL, then info.
	Level string
	// Production selects the JSON encoder.
	Production bool
	// OutputPaths overrides the default stdout sink, e.g. a log file for the dashboard.
	OutputPaths []string
}

// IsTest routes output to stdout with the development encoder regardless of Options.
var IsTest bool

func parseLevel(levelStr string) zapcore.Level {
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = zapcore.InfoLevel
	}
	return level
}

func build(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(parseLevel(opts.Level))

	if IsTest {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		cfg.OutputPaths = []string{"stdout"}
		return cfg.Build()
	}

	var cfg zap.Config
	if opts.Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
		cfg.ErrorOutputPaths = opts.OutputPaths
	}
	return cfg.Build()
}

// InitLogger (re)builds the global logger. Safe to call more than once;
// the last call wins.
func InitLogger(opts Options) error {
	zapLogger, err := build(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
	}
	logger = zapLogger.Sugar()
	return nil
}

// GetLogger returns the global logger, building a default one on first use.
func GetLogger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		zapLogger, err := build(Options{})
		if err != nil {
			panic(fmt.Sprintf("failed to initialize logger: %v", err))
		}
		logger = zapLogger.Sugar()
	}
	return logger
}

// Close flushes buffered entries. Call before exit.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil && !IsTest {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
			return err
		}
	}
	return nil
}
