// Package logging builds the zap logger used by the addressbook binary.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/addressbook/internal/config"
)

// New builds a logger from cfg. Output goes to cfg.File when set, otherwise to w.
// The returned cleanup func flushes the logger and closes the log file, if any.
func New(cfg config.Log, w io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	var (
		sink      zapcore.WriteSyncer
		closeFile = func() error { return nil }
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
		}
		sink = zapcore.Lock(f)
		closeFile = f.Close
	} else {
		sink = zapcore.AddSync(w)
	}

	logger := zap.New(zapcore.NewCore(enc, sink, level))
	cleanup := func() error {
		_ = logger.Sync()
		return closeFile()
	}
	return logger, cleanup, nil
}
