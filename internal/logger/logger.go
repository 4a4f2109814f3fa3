// Package logger builds the zap logger used for diagnostics on stderr.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv overrides the level chosen from the verbose flag
const LevelEnv = "AIGCM_LOG_LEVEL"

// New returns a console logger writing to w. Verbose runs log at debug,
// otherwise only errors are shown.
func New(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.ErrorLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if env := os.Getenv(LevelEnv); env != "" {
		level = ParseLevel(env, level)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(EncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddStacktrace(zapcore.PanicLevel))
}

func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = "N"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// ParseLevel maps a level name to a zap level, returning fallback when unknown
func ParseLevel(name string, fallback zapcore.Level) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return fallback
	}
}
