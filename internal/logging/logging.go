// Package logging собирает zap-логгер для команд и сессии.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New создаёт логгер заданного уровня. development включает консольный формат.
func New(level string, development bool) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop возвращает логгер, который ничего не пишет
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
