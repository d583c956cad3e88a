// Package logging builds the application's slog.Logger: tint for colored
// console output, the JSON handler for machine-readable output, and an
// optional Fluent Bit sink that receives every record as well.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/config"
)

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "critical":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewConsoleHandler returns the handler writing to w in the configured format.
func NewConsoleHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	switch {
	case cfg.JSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource})
	case cfg.Color:
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource})
	}
}

// New builds the logger described by cfg. The returned close function flushes
// and closes the Fluent connection when one was opened; it is never nil.
func New(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	console := NewConsoleHandler(w, cfg)
	if !cfg.FluentEnabled {
		return slog.New(console), func() error { return nil }, nil
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to fluent bit: %w", err)
	}

	handler := NewFanoutHandler(console, NewFluentHandler(client, cfg.FluentTag, ParseLevel(cfg.Level)))
	return slog.New(handler), client.Close, nil
}

// FanoutHandler forwards every record to each of its handlers.
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler combines handlers; a record is delivered to every handler
// that has its level enabled.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		next = append(next, handler.WithAttrs(attrs))
	}
	return &FanoutHandler{handlers: next}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		next = append(next, handler.WithGroup(name))
	}
	return &FanoutHandler{handlers: next}
}
