// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseField parses a "name=value" pair. The value may be empty or contain '='.
func ParseField(s string) (Field, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Field{}, fmt.Errorf("invalid field %q: expected name=value", s)
	}
	return Field{Name: name, Value: value}, nil
}

// ParseFile parses a "name=path" pair and reads the file from disk.
func ParseFile(s string) (File, error) {
	name, path, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if !ok || name == "" || path == "" {
		return File{}, fmt.Errorf("invalid file %q: expected name=path", s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading attachment: %w", err)
	}
	return File{Name: name, Filename: filepath.Base(path), Data: data}, nil
}
