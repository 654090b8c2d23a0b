// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/olegiv/ocms-contact/internal/form"
)

// Request header values marking a scripted submission.
const (
	HeaderRequestedWith = "X-Requested-With"
	RequestedWithXHR    = "XMLHttpRequest"
	maxResultLen        = 1 << 20 // Maximum result body read (1MB)
)

// Result is the server's reply to a submission.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// send posts the form with the widget token and decodes the result.
// The result is decoded whatever the HTTP status, since the server reports
// failures in the body.
func (h *Handler) send(ctx context.Context, token string) (*Result, error) {
	payload, err := h.form.Payload(form.Field{Name: h.provider.ResponseField(), Value: token})
	if err != nil {
		return nil, &TransportError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.form.Action(), payload.Reader())
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestedWith, RequestedWithXHR)
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	h.logger.Debug("contact response received", "status", resp.StatusCode)

	return decodeResult(io.LimitReader(resp.Body, maxResultLen))
}

// decodeResult reads exactly one JSON value from r. A null body or any data
// after the value is a decode error. A value that is not an object carries
// no success flag and decodes to a failed result.
func decodeResult(r io.Reader) (*Result, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, &TransportError{Op: "decode", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &TransportError{Op: "decode", Err: errors.New("unexpected data after result")}
	}

	switch raw[0] {
	case 'n':
		return nil, &TransportError{Op: "decode", Err: errors.New("empty result")}
	case '{':
		var result Result
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, &TransportError{Op: "decode", Err: err}
		}
		return &result, nil
	default:
		return &Result{}, nil
	}
}
