// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package page models the parts of a rendered page the contact handler
// touches: forms and modal dialogs addressed by element id, and the
// content-loaded event.
package page

import (
	"context"
	"sync"

	"github.com/olegiv/ocms-contact/internal/form"
)

// ReadyFunc runs once the page content has loaded.
type ReadyFunc func(ctx context.Context, doc *Document)

// Document is a registry of page elements by id.
type Document struct {
	mu      sync.Mutex
	forms   map[string]*form.Form
	modals  map[string]*Modal
	onReady []ReadyFunc
	ready   bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		forms:  make(map[string]*form.Form),
		modals: make(map[string]*Modal),
	}
}

// AddForm registers a form under its element id.
func (d *Document) AddForm(f *form.Form) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forms[f.ID()] = f
}

// AddModal registers a modal under its element id.
func (d *Document) AddModal(m *Modal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modals[m.ID()] = m
}

// Form looks up a form by element id.
func (d *Document) Form(id string) (*form.Form, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.forms[id]
	return f, ok
}

// Modal looks up a modal by element id.
func (d *Document) Modal(id string) (*Modal, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.modals[id]
	return m, ok
}

// OnReady registers fn to run when the content has loaded.
// If the document is already ready, fn runs immediately.
func (d *Document) OnReady(ctx context.Context, fn ReadyFunc) {
	d.mu.Lock()
	if d.ready {
		d.mu.Unlock()
		fn(ctx, d)
		return
	}
	d.onReady = append(d.onReady, fn)
	d.mu.Unlock()
}

// Ready marks the content as loaded and runs pending ready callbacks once.
func (d *Document) Ready(ctx context.Context) {
	d.mu.Lock()
	if d.ready {
		d.mu.Unlock()
		return
	}
	d.ready = true
	pending := d.onReady
	d.onReady = nil
	d.mu.Unlock()

	for _, fn := range pending {
		fn(ctx, d)
	}
}
