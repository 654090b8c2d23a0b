// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"context"
	"sync/atomic"
)

// Event is a submit event dispatched to form listeners.
type Event struct {
	Form      *Form
	prevented atomic.Bool
}

// PreventDefault suppresses the form's default submission.
func (e *Event) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented.Load()
}

// OnSubmit registers a submit listener.
func (f *Form) OnSubmit(l Listener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, l)
}

// Submit dispatches a submit event to all listeners in registration order
// and then runs the default action unless a listener prevented it.
// Concurrent calls are not serialized against each other.
func (f *Form) Submit(ctx context.Context) *Event {
	f.mu.Lock()
	listeners := make([]Listener, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	ev := &Event{Form: f}
	for _, l := range listeners {
		l(ctx, ev)
	}

	if !ev.DefaultPrevented() && f.DefaultAction != nil {
		f.DefaultAction(ctx, f)
	}
	return ev
}
