// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package captcha describes the CAPTCHA widget the contact form embeds.
// The widget is an injected capability: the handler only asks it for the
// current response token and resets it after a successful submission.
package captcha

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Widget is the client-side CAPTCHA widget.
type Widget interface {
	// GetResponse returns the current response token, or "" if the
	// challenge has not been completed.
	GetResponse() string
	// Reset clears the widget so a new challenge must be solved.
	Reset()
}

// Provider identifies the CAPTCHA service rendering the widget.
type Provider string

// Supported providers.
const (
	ProviderReCaptcha Provider = "recaptcha"
	ProviderHCaptcha  Provider = "hcaptcha"
)

// Responses accepted by the providers' test secret keys.
// See: https://docs.hcaptcha.com/#integration-testing-test-keys
// and https://developers.google.com/recaptcha/docs/faq
const (
	hCaptchaTestResponse  = "10000000-aaaa-bbbb-cccc-000000000001"
	reCaptchaTestResponse = "recaptcha-test-response"
)

// ParseProvider parses a provider name, case-insensitively.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderReCaptcha, "":
		return ProviderReCaptcha, nil
	case ProviderHCaptcha:
		return ProviderHCaptcha, nil
	default:
		return "", fmt.Errorf("unknown captcha provider %q", s)
	}
}

// ResponseField returns the form field name the widget posts its token under.
func (p Provider) ResponseField() string {
	if p == ProviderHCaptcha {
		return "h-captcha-response"
	}
	return "g-recaptcha-response"
}

// TestResponse returns a token accepted when the server runs with the
// provider's test secret key.
func (p Provider) TestResponse() string {
	if p == ProviderHCaptcha {
		return hCaptchaTestResponse
	}
	return reCaptchaTestResponse
}

// ResponseFromRequest extracts the widget token from a submitted form.
func (p Provider) ResponseFromRequest(r *http.Request) string {
	return r.FormValue(p.ResponseField())
}

// StaticWidget is a widget holding a pre-solved token.
// It is safe for concurrent use.
type StaticWidget struct {
	mu     sync.Mutex
	token  string
	resets int
}

// NewStaticWidget creates a widget that reports token until reset.
func NewStaticWidget(token string) *StaticWidget {
	return &StaticWidget{token: token}
}

// GetResponse implements Widget.
func (w *StaticWidget) GetResponse() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}

// Reset implements Widget.
func (w *StaticWidget) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.token = ""
	w.resets++
}

// Solve sets a new response token, as if the user completed the challenge.
func (w *StaticWidget) Solve(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.token = token
}

// Resets returns how many times the widget was reset.
func (w *StaticWidget) Resets() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resets
}
