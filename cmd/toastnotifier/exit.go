package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jongio/toastnotifier/cliout"
)

// Exit codes of the toastnotifier command.
const (
	exitSuccess = 0
	exitFailure = 1
	// exitUsage reports arguments that could not be parsed.
	exitUsage = 100
)

// usageError marks errors caused by unparseable arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return exitFailure
}

type errorReport struct {
	Error string `json:"error" yaml:"error"`
}

// reportError prints err in the selected output format. Plain errors go to
// stderr so they never mix with a printed outcome.
func reportError(err error) {
	if cliout.IsStructured() {
		_ = cliout.Print(errorReport{Error: err.Error()}, nil)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, "Run 'toastnotifier --help' for usage.")
	}
}
