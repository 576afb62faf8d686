package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ppe-tracker/pkg/config"
)

// NewLogger writes to stdout and, when cfg.File is set, to a log file as well.
func NewLogger(cfg config.LogConfig) *zap.Logger {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	encoding := cfg.Encoding
	if encoding != "json" {
		encoding = "console"
	}

	outputs := []string{"stdout"}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			outputs = append(outputs, cfg.File)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	dualConfig := zap.Config{
		Encoding:         encoding,
		Level:            level,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
