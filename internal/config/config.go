// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/ocms-contact/internal/captcha"
)

// Config holds the client configuration loaded from environment variables.
type Config struct {
	ActionURL string `env:"OCMS_CONTACT_ACTION_URL"`                         // Endpoint the contact form posts to
	FormID    string `env:"OCMS_CONTACT_FORM_ID" envDefault:"contactForm"`   // Form element id
	ModalID   string `env:"OCMS_CONTACT_MODAL_ID" envDefault:"contactModal"` // Modal element id closed on success
	Env       string `env:"OCMS_CONTACT_ENV" envDefault:"development"`
	LogLevel  string `env:"OCMS_CONTACT_LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"OCMS_CONTACT_LOG_FILE"` // Structured log destination; errors always reach stderr
	Lang      string `env:"OCMS_CONTACT_LANG" envDefault:"en"`

	// CAPTCHA configuration
	CaptchaProvider string `env:"OCMS_CONTACT_CAPTCHA_PROVIDER" envDefault:"recaptcha"` // recaptcha or hcaptcha
	CaptchaToken    string `env:"OCMS_CONTACT_CAPTCHA_TOKEN"`                           // Pre-solved widget response
}

// IsDevelopment returns true if the client is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Provider returns the configured CAPTCHA provider.
func (c Config) Provider() (captcha.Provider, error) {
	return captcha.ParseProvider(c.CaptchaProvider)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that may also come from command-line flags.
func (c Config) Validate() error {
	if c.ActionURL == "" {
		return fmt.Errorf("OCMS_CONTACT_ACTION_URL is required")
	}
	u, err := url.Parse(c.ActionURL)
	if err != nil {
		return fmt.Errorf("invalid action URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("action URL must use http or https, got %q", c.ActionURL)
	}
	if c.FormID == "" {
		return fmt.Errorf("OCMS_CONTACT_FORM_ID must not be empty")
	}
	if _, err := c.Provider(); err != nil {
		return err
	}
	return nil
}
