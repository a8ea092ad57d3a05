package main

import (
	"errors"

	"github.com/jongio/toastnotifier/cache"
	"github.com/jongio/toastnotifier/cliout"
	"github.com/jongio/toastnotifier/healthcheck"
	"github.com/jongio/toastnotifier/notify"
	"github.com/spf13/cobra"
)

// environmentChecks is replaced in tests.
var environmentChecks = func() []healthcheck.Check {
	return append(healthcheck.PlatformChecks(), healthcheck.DirCheck("image cache", cache.DefaultDir()))
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that this machine can display notifications",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check(cmd)
		},
	}
}

func (a *app) check(cmd *cobra.Command) error {
	report := healthcheck.NewChecker(0, environmentChecks()...).Run(cmd.Context())
	log.Debug("environment checked", "status", report.Status, "checks", len(report.Checks))

	if a.opts.MetricsFile != "" {
		if err := notify.WriteMetricsFile(a.opts.MetricsFile); err != nil {
			log.Warn("failed to write metrics file", "path", a.opts.MetricsFile, "error", err)
		}
	}

	if err := cliout.Print(report, func() { printReport(report) }); err != nil {
		return err
	}
	if !report.Healthy() {
		return errors.New("notification environment is unhealthy")
	}
	return nil
}

func printReport(report healthcheck.Report) {
	for _, r := range report.Checks {
		switch r.Status {
		case healthcheck.HealthStatusHealthy:
			cliout.Success("%s: %s", r.Name, r.Message)
		case healthcheck.HealthStatusDegraded:
			cliout.Warning("%s: %s", r.Name, r.Message)
		default:
			cliout.Error("%s: %s", r.Name, r.Message)
		}
		if r.Suggestion != "" {
			cliout.Plain("  %s", r.Suggestion)
		}
	}
}
