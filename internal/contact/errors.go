// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"errors"
	"fmt"
)

// ErrCaptchaRequired is returned when the widget has no response token.
// No request is sent in that case.
var ErrCaptchaRequired = errors.New("captcha verification incomplete")

// ApplicationError is a failure reported by the server in its result.
type ApplicationError struct {
	Message string // Server-supplied message, may be empty
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "server rejected submission"
	}
	return "server rejected submission: " + e.Message
}

// TransportError is a failure to exchange the submission with the server:
// encoding, network, or an unparseable response.
type TransportError struct {
	Op  string // "encode", "request", "decode"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
