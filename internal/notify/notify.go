// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify delivers blocking notifications to the user.
package notify

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Notifier shows a message and returns once the user has dismissed it.
type Notifier interface {
	Alert(message string)
}

// Terminal prints alerts to an output stream and waits for Enter on the
// input stream. With a nil input stream it does not wait.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

// NewTerminal creates a terminal notifier.
func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	t := &Terminal{out: out}
	if in != nil {
		t.in = bufio.NewReader(in)
	}
	return t
}

// Alert implements Notifier. The message is printed as given, minus any
// terminal control sequences.
func (t *Terminal) Alert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintf(t.out, "[!] %s\n", Printable(message))
	if t.in == nil {
		return
	}

	_, _ = fmt.Fprint(t.out, "    Press Enter to continue...")
	_, _ = t.in.ReadString('\n')
	_, _ = fmt.Fprintln(t.out)
}

// Printable removes ANSI escape sequences and control characters other than
// newline and tab from s. All other text, markup included, is kept.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, ansi.Strip(s))
}
