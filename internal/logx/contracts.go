// Package logx is the structured logging facade used across the service.
package logx

import (
	"log/slog"
	"strings"
	"time"
)

// Logger writes leveled messages with key-value fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func Any(key string, value any) Field                { return Field{key, value} }
func String(key, value string) Field                 { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Int64(key string, value int64) Field            { return Field{key, value} }
func Float64(key string, value float64) Field        { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Time(key string, value time.Time) Field         { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// Err stores the error text under "err". nil becomes "".
func Err(err error) Field {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Field{Key: "err", Value: msg}
}

// ParseLevel maps debug, info, warn(ing) and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
