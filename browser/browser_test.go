// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func stubOpen(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := openURL
	openURL = fn
	t.Cleanup(func() { openURL = orig })
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"default is valid", "default", true},
		{"none is valid", "none", true},
		{"invalid target", "invalid", false},
		{"empty string", "", false},
		{"chrome not valid", "chrome", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.target); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestFormatValidTargets(t *testing.T) {
	if got := FormatValidTargets(); got != "default, none" {
		t.Errorf("FormatValidTargets() = %q, want %q", got, "default, none")
	}
}

func TestLaunch(t *testing.T) {
	var opened []string
	stubOpen(t, func(url string) error {
		opened = append(opened, url)
		return nil
	})

	if err := Launch(context.Background(), LaunchOptions{URL: " https://example.com/build ", Target: TargetDefault}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(opened) != 1 || opened[0] != "https://example.com/build" {
		t.Errorf("opened = %v, want the trimmed URL once", opened)
	}

	if err := Launch(context.Background(), LaunchOptions{URL: "https://example.com", Target: TargetNone}); err != nil {
		t.Fatalf("Launch(none) error = %v", err)
	}
	if len(opened) != 1 {
		t.Errorf("TargetNone opened a browser: %v", opened)
	}
}

func TestLaunch_Errors(t *testing.T) {
	stubOpen(t, func(string) error {
		t.Error("browser opened for an invalid launch")
		return nil
	})

	tests := []struct {
		name   string
		opts   LaunchOptions
		errMsg string
	}{
		{"file url", LaunchOptions{URL: "file:///etc/passwd"}, "invalid launch url"},
		{"javascript", LaunchOptions{URL: "javascript:alert(1)"}, "invalid launch url"},
		{"empty", LaunchOptions{URL: ""}, "invalid launch url"},
		{"none still validates", LaunchOptions{URL: "ms-settings:", Target: TargetNone}, "invalid launch url"},
		{"unknown target", LaunchOptions{URL: "https://example.com", Target: "chrome"}, "unsupported browser target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Launch(context.Background(), tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Launch() error = %v, want it to contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestLaunch_OpenFails(t *testing.T) {
	stubOpen(t, func(string) error { return errors.New("xdg-open not found") })

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com"})
	if err == nil || !strings.Contains(err.Error(), "xdg-open not found") {
		t.Errorf("Launch() error = %v, want the open error", err)
	}
}

func TestLaunch_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	stubOpen(t, func(string) error {
		<-release
		return nil
	})

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com", Timeout: 20 * time.Millisecond})
	if err == nil || !strings.Contains(err.Error(), "no response") {
		t.Errorf("Launch() error = %v, want a timeout", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Launch(ctx, LaunchOptions{URL: "https://example.com", Timeout: time.Minute})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Launch() error = %v, want context.Canceled", err)
	}
}
