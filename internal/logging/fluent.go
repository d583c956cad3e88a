package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Poster is the part of *fluent.Fluent the handler uses.
type Poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler is a slog.Handler posting each record as a flat map to Fluent Bit.
// The tag is "<prefix>.<level>", e.g. "simulator.info".
type FluentHandler struct {
	client   Poster
	prefix   string
	minLevel slog.Level
	attrs    []slog.Attr
	group    string
}

// NewFluentHandler creates a handler posting records at or above minLevel.
func NewFluentHandler(client Poster, prefix string, minLevel slog.Level) *FluentHandler {
	return &FluentHandler{client: client, prefix: prefix, minLevel: minLevel}
}

func (h *FluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]interface{}, len(h.attrs)+r.NumAttrs()+3)
	for _, a := range h.attrs {
		addAttr(data, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, h.group, a)
		return true
	})

	level := strings.ToLower(r.Level.String())
	data["level"] = level
	data["message"] = r.Message
	data["timestamp"] = r.Time.UTC().Format(time.RFC3339Nano)

	return h.client.Post(h.prefix+"."+level, data)
}

func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *FluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		next.group = h.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

func addAttr(data map[string]interface{}, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	switch {
	case key == "":
		key = prefix
	case prefix != "":
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(data, key, ga)
		}
		return
	}
	switch a.Value.Kind() {
	case slog.KindTime:
		data[key] = a.Value.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindDuration:
		data[key] = a.Value.Duration().String()
	default:
		v := a.Value.Any()
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[key] = v
	}
}
