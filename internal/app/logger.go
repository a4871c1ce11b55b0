package app

import (
	"os"

	"paquexpress-service/internal/config"
	"paquexpress-service/internal/logx"
)

// NewLogger returns a JSON logger on stdout at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, logx.ParseLevel(cfg.LogLevel))
}
