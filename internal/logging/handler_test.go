package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleHandlerMirrorsErrors(t *testing.T) {
	var inner, console bytes.Buffer
	h := NewConsoleHandler(slog.NewTextHandler(&inner, &slog.HandlerOptions{Level: slog.LevelInfo}), &console)
	logger := slog.New(h)

	logger.Info("submission started", "form", "contactForm")
	logger.Error("contact submission failed", "error", errors.New("connection refused"))

	if !strings.Contains(inner.String(), "submission started") {
		t.Errorf("inner handler missing info record: %q", inner.String())
	}
	if !strings.Contains(inner.String(), "contact submission failed") {
		t.Errorf("inner handler missing error record: %q", inner.String())
	}

	want := "Error: contact submission failed error=\"connection refused\"\n"
	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}
}

func TestConsoleHandlerMirrorsWhenInnerDisabled(t *testing.T) {
	var inner, console bytes.Buffer
	h := NewConsoleHandler(slog.NewTextHandler(&inner, &slog.HandlerOptions{Level: slog.Level(100)}), &console)

	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Enabled(ERROR) = false, want true")
	}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(INFO) = true, want false")
	}

	slog.New(h).Error("boom")

	if inner.Len() != 0 {
		t.Errorf("inner handler should be silent, got %q", inner.String())
	}
	if console.String() != "Error: boom\n" {
		t.Errorf("console = %q", console.String())
	}
}

func TestConsoleHandlerWithLevel(t *testing.T) {
	var inner, console bytes.Buffer
	h := NewConsoleHandlerWithLevel(slog.NewTextHandler(&inner, nil), &console, slog.LevelWarn)
	logger := slog.New(h)

	logger.Info("quiet")
	logger.Warn("loud")

	if console.String() != "Warning: loud\n" {
		t.Errorf("console = %q", console.String())
	}
}

func TestConsoleHandlerWithAttrsAndGroup(t *testing.T) {
	var inner, console bytes.Buffer
	h := NewConsoleHandler(slog.NewTextHandler(&inner, nil), &console)
	logger := slog.New(h).With("submission_id", "abc").WithGroup("http")

	logger.Error("request failed", "status", 502)

	want := "Error: request failed submission_id=\"abc\" http.status=\"502\"\n"
	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}
}

type redacted string

func (r redacted) LogValue() slog.Value {
	return slog.StringValue(strings.Repeat("*", len(r)))
}

func TestConsoleHandlerResolvesLogValuer(t *testing.T) {
	var inner, console bytes.Buffer
	h := NewConsoleHandler(slog.NewTextHandler(&inner, nil), &console)
	logger := slog.New(h).With("token", redacted("abc"))

	logger.Error("captcha rejected", "secret", redacted("hunter2"))

	want := "Error: captcha rejected token=\"***\" secret=\"*******\"\n"
	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}
}
