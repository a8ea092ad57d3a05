// Package testutil provides testing helpers shared by the command and MCP
// packages.
//
// This package includes helpers for:
//   - Capturing stdout and cliout output during a command (CaptureOutput)
//   - A scripted notification delivery that reports a fixed outcome (ScriptedDelivery)
//   - Writing fixture files into a test directory (WriteFile)
//
// All functions use t.Helper() for proper test line reporting.
//
// Example usage:
//
//	delivery := &testutil.ScriptedDelivery{Outcome: notify.Activated()}
//	output := testutil.CaptureOutput(t, func() error {
//	    return run(ctx, delivery, opts)
//	})
package testutil
