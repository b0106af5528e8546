// Package logging builds the zap logger shared by the INK binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and, optionally, a rotated log file written next to stderr.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a JSON logger at the requested level.
func New(options Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(defaultIfEmpty(options.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink io.Writer = os.Stderr
	if strings.TrimSpace(options.File) != "" {
		sink = io.MultiWriter(os.Stderr, newRotatingFile(options))
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), level)
	return zap.New(core, zap.AddCaller()), nil
}

func newRotatingFile(options Options) *lumberjack.Logger {
	rotating := &lumberjack.Logger{
		Filename:   strings.TrimSpace(options.File),
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   true,
	}
	if rotating.MaxSize <= 0 {
		rotating.MaxSize = 100
	}
	return rotating
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
