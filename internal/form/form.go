// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form models an HTML form: named fields, file attachments,
// reset-to-defaults and submit event dispatch.
package form

import (
	"context"
	"slices"
	"sync"
)

// Field is a single named text value.
type Field struct {
	Name  string
	Value string
}

// File is a file attachment bound to a field name.
type File struct {
	Name     string // Field name
	Filename string // Client-side file name
	Data     []byte
}

// Listener handles a submit event.
type Listener func(ctx context.Context, ev *Event)

// Form holds field values for one form element.
// It is safe for concurrent use.
type Form struct {
	id     string
	action string

	mu        sync.Mutex
	fields    []Field
	defaults  []Field
	files     []File
	listeners []Listener

	// DefaultAction runs when a submit event is not prevented.
	// A nil DefaultAction makes the default a no-op.
	DefaultAction func(ctx context.Context, f *Form)
}

// New creates a form with the given element id and action URL.
// Fields passed here become the defaults restored by Reset.
func New(id, action string, defaults ...Field) *Form {
	return &Form{
		id:       id,
		action:   action,
		fields:   slices.Clone(defaults),
		defaults: slices.Clone(defaults),
	}
}

// ID returns the form element id.
func (f *Form) ID() string {
	return f.id
}

// Action returns the URL the form submits to.
func (f *Form) Action() string {
	return f.action
}

// Set replaces every value of the named field with value.
// The field is appended if it does not exist.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.fields[:0]
	replaced := false
	for _, fld := range f.fields {
		if fld.Name != name {
			out = append(out, fld)
			continue
		}
		if !replaced {
			out = append(out, Field{Name: name, Value: value})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, Field{Name: name, Value: value})
	}
	f.fields = out
}

// Add appends a value for the named field, keeping existing values.
func (f *Form) Add(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = append(f.fields, Field{Name: name, Value: value})
}

// Get returns the first value of the named field.
func (f *Form) Get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fld := range f.fields {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// Attach adds a file attachment under the given field name.
func (f *Form) Attach(name, filename string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, File{Name: name, Filename: filename, Data: slices.Clone(data)})
}

// Values returns a copy of the current field values in order.
func (f *Form) Values() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.fields)
}

// Files returns a copy of the current attachments.
func (f *Form) Files() []File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.files)
}

// Reset restores the default field values and drops all attachments.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = slices.Clone(f.defaults)
	f.files = nil
}

// Payload encodes the current fields, the given extra fields and the
// attachments into a multipart body.
func (f *Form) Payload(extra ...Field) (*Payload, error) {
	f.mu.Lock()
	fields := append(slices.Clone(f.fields), extra...)
	files := slices.Clone(f.files)
	f.mu.Unlock()

	return encodeMultipart(fields, files)
}
