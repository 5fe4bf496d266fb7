// Package logger provides the structured logging of the command line tools.
package logger

import (
	"fmt"
	"os"

	"github.com/splinekit/cubic/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init
// is called.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// FileConfig holds log file rotation settings.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default rotation settings for a log file.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Init initializes the logger from the logging section of the configuration
// and installs it as the tracer of the library packages.
// Console output goes to stderr, so rendered images may be piped to stdout.
func Init(cfg config.LoggingConfig) error {
	var file FileConfig
	if cfg.LogFile != "" {
		file = DefaultFileConfig(cfg.LogFile)
	}
	if err := InitWithFileConfig(cfg.Level, file, true); err != nil {
		return err
	}
	InstallTracing(cfg.Level)
	return nil
}

// InitWithFileConfig initializes the logger with custom file configuration.
// Set console to false to disable console logging.
func InitWithFileConfig(level string, file FileConfig, console bool) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	var cores []zapcore.Core
	if console {
		enc := zapcore.NewConsoleEncoder(encoderConfig(true))
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl))
	}
	if file.Path != "" {
		w := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
			Compress:   file.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(encoderConfig(false))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}
	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(terminal bool) zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
	if terminal {
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}

// parseLevel accepts the zap level names; the empty level means info.
func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("logger: %w", err)
	}
	return lvl, nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}
