// Package logging sets up slog and provides a handler that mirrors
// diagnostic records to a console stream.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ParseLevel maps a configured level name to a slog level.
// Unknown names map to info.
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

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ConsoleHandler is a slog.Handler that wraps another handler and also writes
// records at or above a threshold to a console stream as "Error: msg k=v".
type ConsoleHandler struct {
	inner   slog.Handler
	console *syncWriter
	level   slog.Level // Minimum level mirrored to the console (default: ERROR)
	attrs   []slog.Attr
	group   string
}

// syncWriter serializes writes shared by handlers derived via WithAttrs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, line)
}

// NewConsoleHandler creates a ConsoleHandler mirroring ERROR records.
func NewConsoleHandler(inner slog.Handler, console io.Writer) *ConsoleHandler {
	return NewConsoleHandlerWithLevel(inner, console, slog.LevelError)
}

// NewConsoleHandlerWithLevel creates a ConsoleHandler with a custom minimum level.
func NewConsoleHandlerWithLevel(inner slog.Handler, console io.Writer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{
		inner:   inner,
		console: &syncWriter{w: console},
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.console.writeLine(h.format(r))
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.inner = h.inner.WithAttrs(attrs)
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), qualify(h.group, attrs)...)
	return &next
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.inner = h.inner.WithGroup(name)
	if h.group != "" {
		next.group = h.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

// format renders a record the way a browser console prints errors.
func (h *ConsoleHandler) format(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(levelLabel(r.Level))
	sb.WriteString(": ")
	sb.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		_, _ = fmt.Fprintf(&sb, "%q", a.Value.Resolve().String())
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, qa := range qualify(h.group, []slog.Attr{a}) {
			writeAttr(qa)
		}
		return true
	})

	sb.WriteString("\n")
	return sb.String()
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "Error"
	case level >= slog.LevelWarn:
		return "Warning"
	default:
		return "Info"
	}
}

func qualify(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: group + "." + a.Key, Value: a.Value}
	}
	return out
}
