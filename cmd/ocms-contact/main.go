// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-contact/internal/captcha"
	"github.com/olegiv/ocms-contact/internal/config"
	"github.com/olegiv/ocms-contact/internal/contact"
	"github.com/olegiv/ocms-contact/internal/form"
	"github.com/olegiv/ocms-contact/internal/i18n"
	"github.com/olegiv/ocms-contact/internal/logging"
	"github.com/olegiv/ocms-contact/internal/notify"
	"github.com/olegiv/ocms-contact/internal/page"
	"github.com/olegiv/ocms-contact/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// errNotSent reports a submission that did not succeed. The user has already
// been told why, so main exits without logging it again.
var errNotSent = errors.New("message not sent")

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// options holds command-line overrides of the environment configuration.
type options struct {
	action      string
	formID      string
	modalID     string
	provider    string
	token       string
	captchaTest bool
	lang        string
	logLevel    string
	noWait      bool
	fields      multiFlag
	files       multiFlag
}

func main() {
	var opts options

	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.StringVar(&opts.action, "action", "", "Contact endpoint URL (overrides OCMS_CONTACT_ACTION_URL)")
	flag.StringVar(&opts.formID, "form", "", "Form element id")
	flag.StringVar(&opts.modalID, "modal", "", "Modal element id closed on success")
	flag.StringVar(&opts.provider, "provider", "", "CAPTCHA provider: recaptcha|hcaptcha")
	flag.StringVar(&opts.token, "captcha", "", "Solved CAPTCHA response token")
	flag.BoolVar(&opts.captchaTest, "captcha-test", false, "Use the provider's test response token")
	flag.StringVar(&opts.lang, "lang", "", "Message language (en, ru)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flag.BoolVar(&opts.noWait, "yes", false, "Do not wait for Enter after each alert")
	flag.Var(&opts.fields, "field", "Form field as name=value (repeatable)")
	flag.Var(&opts.files, "file", "File attachment as name=path (repeatable)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ocms-contact - submit the site contact form\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_ACTION_URL        Contact endpoint URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_FORM_ID           Form element id (default: contactForm)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_MODAL_ID          Modal element id (default: contactModal)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_CAPTCHA_PROVIDER  recaptcha|hcaptcha (default: recaptcha)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_CAPTCHA_TOKEN     Solved CAPTCHA response token\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_LANG              Message language (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_LOG_LEVEL         Log level (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CONTACT_LOG_FILE          Structured log file (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nExample:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  %s -action http://localhost:5000/contact -captcha-test \\\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "     -field name=Ann -field email=ann@example.com -field message=Hello\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, info)
	stop()

	if err != nil {
		if !errors.Is(err, errNotSent) {
			slog.Error("application error", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, info version.Info) error {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, opts)

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	provider, _ := cfg.Provider()

	messages, err := i18n.New(logger)
	if err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	token := cfg.CaptchaToken
	if opts.captchaTest {
		token = provider.TestResponse()
	}

	f, err := buildForm(cfg, opts)
	if err != nil {
		return err
	}

	doc := page.NewDocument()
	doc.AddForm(f)
	doc.AddModal(page.NewModal(cfg.ModalID, true))

	var in io.Reader = os.Stdin
	if opts.noWait {
		in = nil
	}

	var outcome contact.Outcome
	err = contact.Attach(ctx, doc, contact.Options{
		FormID:    cfg.FormID,
		ModalID:   cfg.ModalID,
		Widget:    captcha.NewStaticWidget(token),
		Provider:  provider,
		Notifier:  notify.NewTerminal(os.Stdout, in),
		Logger:    logger,
		Messages:  messages,
		Lang:      messages.Match(cfg.Lang),
		UserAgent: info.UserAgent(),
		OnOutcome: func(o contact.Outcome) { outcome = o },
	})
	if err != nil {
		return fmt.Errorf("attaching contact handler: %w", err)
	}

	doc.Ready(ctx)
	f.Submit(ctx)

	if outcome.Err != nil {
		return errNotSent
	}
	return nil
}

// applyOverrides copies non-empty command-line values over the environment.
func applyOverrides(cfg *config.Config, opts options) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ActionURL, opts.action)
	set(&cfg.FormID, opts.formID)
	set(&cfg.ModalID, opts.modalID)
	set(&cfg.CaptchaProvider, opts.provider)
	set(&cfg.CaptchaToken, opts.token)
	set(&cfg.Lang, opts.lang)
	set(&cfg.LogLevel, opts.logLevel)
}

// setupLogger writes structured logs to the configured file and mirrors
// errors to stderr. Without a log file only the stderr mirror is active.
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)})
	return slog.New(logging.NewConsoleHandler(inner, os.Stderr)), closeFn, nil
}

// buildForm creates the contact form from -field and -file flags.
func buildForm(cfg *config.Config, opts options) (*form.Form, error) {
	f := form.New(cfg.FormID, cfg.ActionURL)
	for _, raw := range opts.fields {
		fld, err := form.ParseField(raw)
		if err != nil {
			return nil, err
		}
		f.Add(fld.Name, fld.Value)
	}
	for _, raw := range opts.files {
		file, err := form.ParseFile(raw)
		if err != nil {
			return nil, err
		}
		f.Attach(file.Name, file.Filename, file.Data)
	}
	return f, nil
}
