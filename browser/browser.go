// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jongio/toastnotifier/urlutil"
	pkgbrowser "github.com/pkg/browser"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// DefaultTimeout bounds how long Launch waits for the browser to start.
const DefaultTimeout = 5 * time.Second

// openURL is replaced in tests.
var openURL = pkgbrowser.OpenURL

func init() {
	// Browser launchers may print; keep stdout for command output.
	pkgbrowser.Stdout = os.Stderr
}

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	for _, valid := range ValidTargets() {
		if Target(target) == valid {
			return true
		}
	}
	return false
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open
	URL string
	// Target browser to use
	Target Target
	// Timeout for starting the browser (default 5 seconds)
	Timeout time.Duration
}

// Launch opens opts.URL unless the target is TargetNone. It returns once
// the browser command has started, the timeout passed or ctx is done.
func Launch(ctx context.Context, opts LaunchOptions) error {
	if err := urlutil.Validate(opts.URL); err != nil {
		return fmt.Errorf("invalid launch url: %w", err)
	}
	switch opts.Target {
	case TargetNone:
		return nil
	case TargetDefault, "":
	default:
		return fmt.Errorf("unsupported browser target: %s (valid: %s)", opts.Target, FormatValidTargets())
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	open, url := openURL, strings.TrimSpace(opts.URL)
	errCh := make(chan error, 1)
	go func() {
		errCh <- open(url)
	}()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not open browser: %w", err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("could not open browser: no response after %s", opts.Timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
