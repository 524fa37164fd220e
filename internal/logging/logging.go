// Package logging builds the zap logger shared by the lambdas and the CLI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level  string
	Format string
}

// New returns a production JSON logger, or a console logger when the format
// is "console".
func New(options Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if options.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(options.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", options.Level, err)
		}
	}
	var config zap.Config
	switch options.Format {
	case "", "json":
		config = zap.NewProductionConfig()
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", options.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}

// Must is New for process entrypoints; it falls back to a no-op logger
// rather than leaving callers with nil.
func Must(options Options) *zap.Logger {
	logger, err := New(options)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
