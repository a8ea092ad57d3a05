package notify

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// The display script prints one event per line on stdout.
const (
	eventShown     = "shown"
	eventError     = "error"
	eventActivated = "activated"
	eventDismissed = "dismissed"
	eventFailed    = "failed"
)

type scriptEvent struct {
	kind   string
	detail string
}

// parseEventLine reads a line written by the display script. Lines that are
// not events are reported with ok false.
func parseEventLine(line string) (ev scriptEvent, ok bool) {
	line = strings.TrimSpace(line)
	kind, detail, _ := strings.Cut(line, ":")
	switch kind {
	case eventShown, eventError, eventActivated, eventDismissed, eventFailed:
		return scriptEvent{kind: kind, detail: strings.TrimSpace(detail)}, true
	}
	return scriptEvent{}, false
}

// dispatch calls the handler matching a terminal event. It reports whether
// ev was terminal.
func (ev scriptEvent) dispatch(h Handlers) bool {
	switch ev.kind {
	case eventActivated:
		h.activated()
	case eventDismissed:
		h.dismissed(ParseDismissalReason(ev.detail))
	case eventFailed:
		if ev.detail == "" {
			h.failed(ErrNotificationFailed)
		} else {
			h.failed(fmt.Errorf("%w: %s", ErrDelivery, ev.detail))
		}
	default:
		return false
	}
	return true
}

var errScriptTerminator = errors.New("document contains a here-string terminator")

const displayScript = `$ErrorActionPreference = 'Stop'
try {
    [Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
    [Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
    $xml = New-Object Windows.Data.Xml.Dom.XmlDocument
    $xml.LoadXml(@'
%s
'@)
    $toast = New-Object Windows.UI.Notifications.ToastNotification $xml
    Register-ObjectEvent -InputObject $toast -EventName Activated -SourceIdentifier toast.activated | Out-Null
    Register-ObjectEvent -InputObject $toast -EventName Dismissed -SourceIdentifier toast.dismissed | Out-Null
    Register-ObjectEvent -InputObject $toast -EventName Failed -SourceIdentifier toast.failed | Out-Null
    [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)
} catch {
    [Console]::Out.WriteLine('error:' + $_.Exception.Message)
    exit 1
}
[Console]::Out.WriteLine('shown')
$event = Wait-Event
switch ($event.SourceIdentifier) {
    'toast.activated' { [Console]::Out.WriteLine('activated') }
    'toast.dismissed' { [Console]::Out.WriteLine('dismissed:' + $event.SourceEventArgs.Reason) }
    'toast.failed' { [Console]::Out.WriteLine('failed:' + $event.SourceEventArgs.ErrorCode.Message) }
}
`

// buildDisplayScript embeds the document in a single-quoted here-string,
// which PowerShell does not expand.
func buildDisplayScript(appID string, xmlDoc []byte) (string, error) {
	doc := strings.ReplaceAll(string(xmlDoc), "\r\n", "\n")
	if strings.HasPrefix(doc, "'@") || strings.Contains(doc, "\n'@") {
		return "", fmt.Errorf("%w: %w", ErrDelivery, errScriptTerminator)
	}
	return fmt.Sprintf(displayScript, doc, sanitizeForPowerShell(appID)), nil
}

// sanitizeForPowerShell prepares s for use inside a single-quoted string.
func sanitizeForPowerShell(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "'", "''")
	return strings.ReplaceAll(s, "`", "")
}

// encodePowerShellCommand encodes a script for -EncodedCommand, which
// expects base64 of UTF-16LE.
func encodePowerShellCommand(script string) string {
	units := utf16.Encode([]rune(script))
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// watchScript reads the output of a running display script. It returns nil
// once the script reports the notification shown and keeps following the
// output in the background until a terminal event, which is dispatched to h.
// An error means the script ended or failed without showing anything; no
// handler is called in that case. wait is called exactly once, after the
// output is drained.
func watchScript(ctx context.Context, r io.Reader, wait func() error, h Handlers) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ev, ok := parseEventLine(scanner.Text())
		if !ok {
			log.Debug("ignoring display script output", "line", scanner.Text())
			continue
		}
		switch ev.kind {
		case eventShown:
			go followScript(ctx, scanner, r, wait, h)
			return nil
		case eventError:
			drainAndWait(r, wait)
			return fmt.Errorf("%w: %s", ErrDelivery, ev.detail)
		default:
			// A terminal event implies the notification was shown.
			ev.dispatch(h)
			go drainAndWait(r, wait)
			return nil
		}
	}
	if err := drainAndWait(r, wait); err != nil {
		return fmt.Errorf("%w: display script failed: %w", ErrDelivery, err)
	}
	return fmt.Errorf("%w: display script ended before showing the notification", ErrDelivery)
}

func followScript(ctx context.Context, scanner *bufio.Scanner, r io.Reader, wait func() error, h Handlers) {
	terminal := false
	for !terminal && scanner.Scan() {
		if ev, ok := parseEventLine(scanner.Text()); ok {
			log.Debug("display script event", "event", ev.kind, "detail", ev.detail)
			terminal = ev.dispatch(h)
		}
	}
	err := drainAndWait(r, wait)
	if terminal || ctx.Err() != nil {
		return
	}
	if err != nil {
		h.failed(fmt.Errorf("%w: display script failed: %w", ErrDelivery, err))
		return
	}
	h.failed(ErrNotificationFailed)
}

func drainAndWait(r io.Reader, wait func() error) error {
	_, _ = io.Copy(io.Discard, r)
	return wait()
}
