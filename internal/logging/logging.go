package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that writes to path, truncating it first. An empty
// path sends log lines to stderr. The returned func flushes and closes the file.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %v", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := NewWithWriter(out, debug)
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}

// NewWithWriter builds a logger on top of any writer
func NewWithWriter(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.ConsoleSeparator = " - "

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core, zap.AddCaller())
}
