// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package page

import "sync/atomic"

// Modal is an overlay dialog that can be shown and hidden.
type Modal struct {
	id      string
	visible atomic.Bool
}

// NewModal creates a modal with the given element id.
func NewModal(id string, visible bool) *Modal {
	m := &Modal{id: id}
	m.visible.Store(visible)
	return m
}

// ID returns the modal element id.
func (m *Modal) ID() string { return m.id }

// Show opens the modal.
func (m *Modal) Show() { m.visible.Store(true) }

// Hide closes the modal.
func (m *Modal) Hide() { m.visible.Store(false) }

// Visible reports whether the modal is open.
func (m *Modal) Visible() bool { return m.visible.Load() }
