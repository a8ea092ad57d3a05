// Package cliout writes command results to stdout in the selected output
// format.
//
// The default format is human-readable text with ANSI colors and Unicode
// symbols, both of which fall back when the terminal cannot show them.
// The json and yaml formats print a result value and nothing else, so the
// output can be piped into other tools:
//
//	if err := cliout.SetFormat(opts.Output); err != nil {
//	    return err
//	}
//	return cliout.Print(outcome.Report(), func() {
//	    cliout.Success("Notification %s", outcome)
//	})
//
// Diagnostics never go through this package; they are logged to stderr.
package cliout
