// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact implements the contact form submission handler.
//
// The handler intercepts the form's submit event, checks that the CAPTCHA
// widget has a response, posts the form to its action URL and reports the
// outcome through a blocking notifier. On success the form and widget are
// reset and the contact modal is closed.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/olegiv/ocms-contact/internal/captcha"
	"github.com/olegiv/ocms-contact/internal/form"
	"github.com/olegiv/ocms-contact/internal/i18n"
	"github.com/olegiv/ocms-contact/internal/notify"
	"github.com/olegiv/ocms-contact/internal/page"
)

// Default element ids used by the contact page.
const (
	DefaultFormID  = "contactForm"
	DefaultModalID = "contactModal"
)

// Options configures a Handler.
type Options struct {
	FormID    string // Form element id (default: contactForm)
	ModalID   string // Modal element id (default: contactModal)
	Widget    captcha.Widget
	Provider  captcha.Provider
	Notifier  notify.Notifier
	Client    *http.Client // nil uses a client without a timeout
	Logger    *slog.Logger
	Messages  *i18n.Catalog // nil loads the bundled catalog
	Lang      string
	UserAgent string // Sent as User-Agent when set

	// OnOutcome, if set, observes the outcome of every submission attempt.
	OnOutcome func(Outcome)
}

// Outcome describes one submission attempt.
type Outcome struct {
	SubmissionID string
	Result       *Result // nil if no result was received
	Message      string  // Message shown to the user
	Err          error   // nil on success
}

// Handler submits one form.
type Handler struct {
	form      *form.Form
	modal     *page.Modal
	widget    captcha.Widget
	provider  captcha.Provider
	notifier  notify.Notifier
	client    *http.Client
	logger    *slog.Logger
	messages  *i18n.Catalog
	lang      string
	userAgent string
	onOutcome func(Outcome)
}

func (o *Options) normalize() error {
	if o.Widget == nil {
		return errors.New("contact: captcha widget is required")
	}
	if o.Notifier == nil {
		return errors.New("contact: notifier is required")
	}
	if o.FormID == "" {
		o.FormID = DefaultFormID
	}
	if o.ModalID == "" {
		o.ModalID = DefaultModalID
	}
	if o.Provider == "" {
		o.Provider = captcha.ProviderReCaptcha
	}
	if o.Client == nil {
		o.Client = &http.Client{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Lang == "" {
		o.Lang = i18n.DefaultLanguage
	}
	if o.Messages == nil {
		messages, err := i18n.New(o.Logger)
		if err != nil {
			return fmt.Errorf("contact: loading messages: %w", err)
		}
		o.Messages = messages
	}
	return nil
}

// New creates a handler for f. modal may be nil.
func New(f *form.Form, modal *page.Modal, opts Options) (*Handler, error) {
	if f == nil {
		return nil, errors.New("contact: form is required")
	}
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return newHandler(f, modal, opts), nil
}

func newHandler(f *form.Form, modal *page.Modal, opts Options) *Handler {
	return &Handler{
		form:      f,
		modal:     modal,
		widget:    opts.Widget,
		provider:  opts.Provider,
		notifier:  opts.Notifier,
		client:    opts.Client,
		logger:    opts.Logger,
		messages:  opts.Messages,
		lang:      opts.Lang,
		userAgent: opts.UserAgent,
		onOutcome: opts.OnOutcome,
	}
}

// Attach binds a handler to the document's contact form once the document
// is ready. If the form is absent nothing is bound.
func Attach(ctx context.Context, doc *page.Document, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	doc.OnReady(ctx, func(_ context.Context, d *page.Document) {
		f, ok := d.Form(opts.FormID)
		if !ok {
			opts.Logger.Debug("contact form not found, handler not attached", "form", opts.FormID)
			return
		}
		modal, _ := d.Modal(opts.ModalID)

		h := newHandler(f, modal, opts)
		f.OnSubmit(h.HandleEvent)
		opts.Logger.Debug("contact handler attached", "form", opts.FormID)
	})
	return nil
}

// HandleEvent is the form submit listener.
func (h *Handler) HandleEvent(ctx context.Context, ev *form.Event) {
	ev.PreventDefault()
	out := h.Submit(ctx)
	if h.onOutcome != nil {
		h.onOutcome(out)
	}
}

// Submit runs one submission attempt. Every failure is terminal for the
// attempt; nothing is retried.
func (h *Handler) Submit(ctx context.Context) Outcome {
	out := Outcome{SubmissionID: uuid.NewString()}
	logger := h.logger.With("submission_id", out.SubmissionID, "form", h.form.ID())

	token := h.widget.GetResponse()
	if token == "" {
		out.Err = ErrCaptchaRequired
		out.Message = h.captchaRequiredMessage()
		logger.Debug("captcha response empty - user did not complete captcha")
		h.notifier.Alert(out.Message)
		return out
	}

	result, err := h.send(ctx, token)
	if err != nil {
		logger.Error("contact submission failed", "error", err, "action", h.form.Action())
		out.Err = err
		out.Message = h.messages.T(h.lang, i18n.KeyErrorLater)
		h.notifier.Alert(out.Message)
		return out
	}
	out.Result = result

	if !result.Success {
		logger.Warn("contact submission rejected", "error", result.Error)
		out.Err = &ApplicationError{Message: result.Error}
		out.Message = result.Error
		if out.Message == "" {
			out.Message = h.messages.T(h.lang, i18n.KeyFailed)
		}
		h.notifier.Alert(out.Message)
		return out
	}

	logger.Info("contact message sent")
	out.Message = h.messages.T(h.lang, i18n.KeySent)
	h.notifier.Alert(out.Message)

	h.form.Reset()
	h.widget.Reset()
	if h.modal != nil {
		h.modal.Hide()
	}
	return out
}

func (h *Handler) captchaRequiredMessage() string {
	if h.provider == captcha.ProviderHCaptcha {
		return h.messages.T(h.lang, i18n.KeyHCaptchaRequired)
	}
	return h.messages.T(h.lang, i18n.KeyCaptchaRequired)
}
