// Command toastnotifier shows a toast notification and waits until the
// user activates or dismisses it, or exports the notification as a
// template file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jongio/toastnotifier/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(notify.New).ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(err)
	}
	os.Exit(exitCode(err))
}
