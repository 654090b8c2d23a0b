// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the contact client.
package testutil

import (
	"io"
	"log/slog"
	"sync"

	"github.com/olegiv/ocms-contact/internal/logging"
)

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return logging.New(io.Discard, slog.LevelError)
}

// Alerts is a notifier that records every alert instead of showing it.
type Alerts struct {
	mu       sync.Mutex
	messages []string
}

// Alert implements notify.Notifier.
func (a *Alerts) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

// Messages returns the recorded alerts in order.
func (a *Alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.messages))
	copy(out, a.messages)
	return out
}

// Last returns the most recent alert, or "" if none was shown.
func (a *Alerts) Last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}
