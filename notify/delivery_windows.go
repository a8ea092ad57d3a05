//go:build windows

package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jongio/toastnotifier/pathutil"
	"github.com/jongio/toastnotifier/toast"
)

// PowerShellDelivery shows notifications through the Windows toast APIs,
// driven by a Windows PowerShell child process per notification.
type PowerShellDelivery struct {
	shell string
}

// NewPowerShellDelivery locates Windows PowerShell. Submit fails with
// ErrNotAvailable when it cannot be found.
func NewPowerShellDelivery() *PowerShellDelivery {
	return &PowerShellDelivery{shell: pathutil.FindTool("powershell", pathutil.SystemDirs()...)}
}

func newPlatformDelivery(Config) Delivery {
	return NewPowerShellDelivery()
}

// Submit implements Delivery. Cancelling ctx stops the child process.
func (d *PowerShellDelivery) Submit(ctx context.Context, appID string, doc *toast.Document, h Handlers) error {
	if d.shell == "" {
		return fmt.Errorf("%w: powershell not found. %s", ErrNotAvailable, pathutil.GetInstallSuggestion("powershell"))
	}

	xmlDoc, err := doc.XML()
	if err != nil {
		return deliveryError(err)
	}
	script, err := buildDisplayScript(appID, xmlDoc)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, d.shell,
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass",
		"-EncodedCommand", encodePowerShellCommand(script))
	cmd.WaitDelay = 2 * time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return deliveryError(err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: failed to start powershell: %w", ErrDelivery, err)
	}

	wait := func() error {
		if err := cmd.Wait(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("%w: %s", err, msg)
			}
			return err
		}
		return nil
	}
	return watchScript(ctx, stdout, wait, h)
}
