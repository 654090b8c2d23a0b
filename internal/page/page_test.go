// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package page

import (
	"context"
	"testing"

	"github.com/olegiv/ocms-contact/internal/form"
)

func TestDocumentLookup(t *testing.T) {
	doc := NewDocument()
	f := form.New("contactForm", "/contact")
	doc.AddForm(f)
	doc.AddModal(NewModal("contactModal", true))

	got, ok := doc.Form("contactForm")
	if !ok || got != f {
		t.Errorf("Form(contactForm) = %v, %v; want registered form", got, ok)
	}
	if _, ok := doc.Form("other"); ok {
		t.Error("Form(other) should not be found")
	}
	if m, ok := doc.Modal("contactModal"); !ok || !m.Visible() {
		t.Error("Modal(contactModal) should be found and visible")
	}
}

func TestReadyRunsOnce(t *testing.T) {
	doc := NewDocument()
	ctx := context.Background()

	calls := 0
	doc.OnReady(ctx, func(context.Context, *Document) { calls++ })

	if calls != 0 {
		t.Fatalf("callback ran before Ready, calls = %d", calls)
	}

	doc.Ready(ctx)
	doc.Ready(ctx)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestOnReadyAfterReadyRunsImmediately(t *testing.T) {
	doc := NewDocument()
	ctx := context.Background()
	doc.Ready(ctx)

	ran := false
	doc.OnReady(ctx, func(_ context.Context, d *Document) {
		ran = d == doc
	})

	if !ran {
		t.Error("callback registered after Ready did not run")
	}
}

func TestModalShowHide(t *testing.T) {
	m := NewModal("contactModal", false)
	if m.Visible() {
		t.Error("new hidden modal reports visible")
	}
	m.Show()
	if !m.Visible() {
		t.Error("Show() did not open modal")
	}
	m.Hide()
	if m.Visible() {
		t.Error("Hide() did not close modal")
	}
	if m.ID() != "contactModal" {
		t.Errorf("ID() = %q, want contactModal", m.ID())
	}
}
