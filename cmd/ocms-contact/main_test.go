// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-contact/internal/captcha"
	"github.com/olegiv/ocms-contact/internal/config"
	"github.com/olegiv/ocms-contact/internal/testutil"
	"github.com/olegiv/ocms-contact/internal/version"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OCMS_CONTACT_ACTION_URL",
		"OCMS_CONTACT_FORM_ID",
		"OCMS_CONTACT_MODAL_ID",
		"OCMS_CONTACT_LOG_LEVEL",
		"OCMS_CONTACT_LOG_FILE",
		"OCMS_CONTACT_LANG",
		"OCMS_CONTACT_CAPTCHA_PROVIDER",
		"OCMS_CONTACT_CAPTCHA_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{
		ActionURL: "http://env/contact",
		FormID:    "contactForm",
		Lang:      "en",
	}
	applyOverrides(cfg, options{action: "http://flag/contact", lang: "ru"})

	assert.Equal(t, "http://flag/contact", cfg.ActionURL)
	assert.Equal(t, "contactForm", cfg.FormID)
	assert.Equal(t, "ru", cfg.Lang)
}

func TestBuildForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("resume"), 0o600))

	cfg := &config.Config{ActionURL: "http://localhost/contact", FormID: "contactForm"}
	f, err := buildForm(cfg, options{
		fields: multiFlag{"name=Ann", "message=Hi=there"},
		files:  multiFlag{"attachment=" + path},
	})
	require.NoError(t, err)

	assert.Equal(t, "contactForm", f.ID())
	assert.Equal(t, "Ann", f.Get("name"))
	assert.Equal(t, "Hi=there", f.Get("message"))
	require.Len(t, f.Files(), 1)
	assert.Equal(t, "cv.txt", f.Files()[0].Filename)

	_, err = buildForm(cfg, options{fields: multiFlag{"broken"}})
	assert.Error(t, err)
}

func TestRunSubmitsForm(t *testing.T) {
	clearEnv(t)
	server := testutil.NewContactServer(t, captcha.ProviderReCaptcha)

	err := run(context.Background(), options{
		action:      server.ActionURL(),
		captchaTest: true,
		noWait:      true,
		fields:      multiFlag{"name=Ann", "email=ann@example.com", "message=Hello"},
	}, version.Info{Version: "v0.1.0"})
	require.NoError(t, err)

	require.Len(t, server.Submissions(), 1)
	sub := server.Submissions()[0]
	assert.Equal(t, captcha.ProviderReCaptcha.TestResponse(), sub.CaptchaToken)
	assert.Equal(t, "ocms-contact/v0.1.0", sub.Header.Get("User-Agent"))
	assert.Equal(t, "XMLHttpRequest", sub.Header.Get("X-Requested-With"))
	assert.Equal(t, []string{"Hello"}, sub.Fields["message"])
}

func TestRunWithoutCaptcha(t *testing.T) {
	clearEnv(t)
	server := testutil.NewContactServer(t, captcha.ProviderReCaptcha)

	err := run(context.Background(), options{
		action: server.ActionURL(),
		noWait: true,
		fields: multiFlag{"name=Ann"},
	}, version.Info{})

	assert.ErrorIs(t, err, errNotSent)
	assert.Empty(t, server.Submissions())
}

func TestRunServerRejects(t *testing.T) {
	clearEnv(t)
	server := testutil.NewContactServer(t, captcha.ProviderHCaptcha)
	server.Enqueue(testutil.JSONReply(http.StatusBadRequest, false, "Please complete the captcha"))

	logFile := filepath.Join(t.TempDir(), "contact.log")
	t.Setenv("OCMS_CONTACT_LOG_FILE", logFile)
	t.Setenv("OCMS_CONTACT_CAPTCHA_PROVIDER", "hcaptcha")
	t.Setenv("OCMS_CONTACT_CAPTCHA_TOKEN", "h-token")

	err := run(context.Background(), options{
		action: server.ActionURL(),
		noWait: true,
	}, version.Info{})

	assert.ErrorIs(t, err, errNotSent)
	require.Len(t, server.Submissions(), 1)
	assert.Equal(t, "h-token", server.Submissions()[0].CaptchaToken)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "contact submission rejected")
}

func TestRunInvalidConfig(t *testing.T) {
	clearEnv(t)

	err := run(context.Background(), options{noWait: true}, version.Info{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, errNotSent)
}
