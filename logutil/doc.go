// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// Logs always go to stderr (or the writer given to SetupLoggerWithWriter) so
// that stdout stays reserved for command output such as a rendered document
// or a display outcome.
//
// # Basic Usage
//
//	logutil.SetupLogger(debug, structured)
//
//	logutil.Debug("submitting notification", "app", appID)
//	logutil.Warn("sound repeat without long duration")
//
// # Component Loggers
//
// NewLogger returns a logger that tags every record with a component name.
// Component loggers resolve the global logger on every call, so they can be
// created at package level before SetupLogger runs:
//
//	var log = logutil.NewLogger("notify")
//
//	log.WithOperation("show").Debug("event received", "event", "activated")
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set TOAST_DEBUG=true environment variable
package logutil
