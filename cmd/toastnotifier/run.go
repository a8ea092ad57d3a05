package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jongio/toastnotifier/browser"
	"github.com/jongio/toastnotifier/cliout"
	"github.com/jongio/toastnotifier/fileutil"
	"github.com/jongio/toastnotifier/logutil"
	"github.com/jongio/toastnotifier/notify"
	"github.com/jongio/toastnotifier/progress"
	"github.com/jongio/toastnotifier/toast"
	"github.com/spf13/cobra"
)

// openBrowser is replaced in tests.
var openBrowser = browser.Launch

type exportReport struct {
	Path     string `json:"path" yaml:"path"`
	Template string `json:"template" yaml:"template"`
}

// run exports or shows the notification described by the loaded options.
func (a *app) run(cmd *cobra.Command) error {
	if err := a.opts.CheckNotification(); err != nil {
		return err
	}
	doc, err := a.opts.Document()
	if err != nil {
		return err
	}
	if a.opts.ExportMode() {
		return a.export(doc)
	}
	return a.show(cmd.Context(), doc)
}

func (a *app) export(doc *toast.Document) error {
	data, err := doc.XML()
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	path := a.opts.OutputPath
	if err := fileutil.AtomicWriteFile(path, data, fileutil.FilePermission); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	log.Info("notification template written", "path", path, "template", doc.TemplateName())

	return cliout.Print(exportReport{Path: path, Template: doc.TemplateName()}, func() {
		cliout.Success("Notification template written to %s", path)
	})
}

func (a *app) show(ctx context.Context, doc *toast.Document) (err error) {
	cfg := a.notifyConfig()
	appID := cfg.ApplicationID(a.opts.AppID)
	logger := log.WithOperation("show").WithFields("app_id", appID, "template", doc.TemplateName())

	var deadline time.Time
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
		deadline, _ = ctx.Deadline()
	}

	if a.opts.MetricsFile != "" {
		defer func() {
			if werr := notify.WriteMetricsFile(a.opts.MetricsFile); werr != nil {
				logger.Warn("failed to write metrics file", "path", a.opts.MetricsFile, "error", werr)
			}
		}()
	}

	waiter := progress.NewWaiter("Waiting for notification", deadline)
	if !cliout.IsStructured() && !logutil.IsDebugEnabled() {
		waiter.Start()
	}
	outcome, err := notify.NewSession(a.newDelivery(cfg)).ShowAndWait(ctx, appID, doc, a.opts.FailOnError)
	waiter.Stop()
	if err != nil {
		return err
	}
	logger.Debug("notification finished", "outcome", outcome.String())
	if outcome.Kind == notify.OutcomeActivated {
		a.openLaunch(ctx, doc)
	}

	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
	return cliout.Print(outcome.Report(), func() {
		printOutcome(outcome, timedOut)
	})
}

// openLaunch opens the launch URL of an activated notification. Failing to
// open it does not fail the run.
func (a *app) openLaunch(ctx context.Context, doc *toast.Document) {
	target := browser.Target(a.opts.Browser)
	if target == browser.TargetNone || doc.Launch() == "" {
		return
	}
	if err := openBrowser(ctx, browser.LaunchOptions{URL: doc.Launch(), Target: target}); err != nil {
		log.Warn("failed to open launch url", "url", doc.Launch(), "error", err)
	}
}

func printOutcome(o notify.Outcome, timedOut bool) {
	switch o.Kind {
	case notify.OutcomeActivated:
		cliout.Success("Notification activated")
	case notify.OutcomeDismissed:
		cliout.Info("Notification dismissed (%s)", o.Reason)
	case notify.OutcomeFailed:
		cliout.Warning("Notification failed: %v", o.Err)
	case notify.OutcomeCancelled:
		if timedOut {
			cliout.Warning("No reaction before the timeout")
			return
		}
		cliout.Warning("Cancelled while waiting for the notification")
	default:
		cliout.Plain("%s", o)
	}
}
