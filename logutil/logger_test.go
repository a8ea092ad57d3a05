// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerCreatesWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	logger := NewLogger("mycomponent")
	if logger.Component() != "mycomponent" {
		t.Errorf("expected component 'mycomponent', got %q", logger.Component())
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=mycomponent") {
		t.Errorf("expected output to contain component=mycomponent, got: %s", buf.String())
	}
}

func TestComponentLoggerFollowsSetup(t *testing.T) {
	logger := NewLogger("early")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	logger.Warn("late setup")
	if !strings.Contains(buf.String(), "late setup") {
		t.Errorf("expected logger created before setup to use the new writer, got: %s", buf.String())
	}
}

func TestWithOperationAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	base := NewLogger("comp")
	logger := base.WithOperation("show").WithFields("app", "demo")
	logger.Error("boom")

	output := buf.String()
	for _, want := range []string{"component=comp", "operation=show", "app=demo"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "operation=") {
		t.Errorf("expected parent logger to be unchanged, got: %s", buf.String())
	}
}
