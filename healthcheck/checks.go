package healthcheck

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jongio/toastnotifier/fileutil"
	"github.com/jongio/toastnotifier/pathutil"
	"github.com/jongio/toastnotifier/procutil"
)

// Replaced in tests.
var (
	findTool    = pathutil.FindTool
	findRunning = procutil.FindRunning
)

// ToolCheck looks for an executable on PATH and in dirs. A missing required
// tool is unhealthy; a missing optional one only degrades.
func ToolCheck(tool string, required bool, dirs ...string) Check {
	return Check{
		Name: "tool " + tool,
		Run: func(context.Context) Result {
			if path := findTool(tool, dirs...); path != "" {
				return Result{Status: HealthStatusHealthy, Message: "found " + path}
			}
			status := HealthStatusDegraded
			if required {
				status = HealthStatusUnhealthy
			}
			return Result{
				Status:     status,
				Message:    tool + " not found",
				Suggestion: pathutil.GetInstallSuggestion(tool),
			}
		},
	}
}

// ProcessCheck looks for a running process that displays notifications.
func ProcessCheck(names ...string) Check {
	return Check{
		Name: "notification host",
		Run: func(ctx context.Context) Result {
			found, err := findRunning(ctx, names...)
			if err != nil {
				return Result{Status: HealthStatusDegraded, Message: fmt.Sprintf("could not list processes: %v", err)}
			}
			if len(found) == 0 {
				return Result{
					Status:     HealthStatusDegraded,
					Message:    "no notification host process is running",
					Suggestion: "start a desktop session or a notification daemon such as one of: " + strings.Join(names, ", "),
				}
			}
			return Result{Status: HealthStatusHealthy, Message: "running: " + strings.Join(found, ", ")}
		},
	}
}

// DirCheck verifies that dir exists or can be created and is writable.
func DirCheck(name, dir string) Check {
	return Check{
		Name: name,
		Run: func(context.Context) Result {
			if err := fileutil.EnsureDir(dir); err != nil {
				return Result{Status: HealthStatusDegraded, Message: err.Error()}
			}
			f, err := os.CreateTemp(dir, ".probe-*")
			if err != nil {
				return Result{Status: HealthStatusDegraded, Message: fmt.Sprintf("%s is not writable: %v", dir, err)}
			}
			probe := f.Name()
			_ = f.Close()
			_ = os.Remove(probe)
			return Result{Status: HealthStatusHealthy, Message: dir}
		},
	}
}

// PlatformChecks returns the checks for the delivery used on this platform.
func PlatformChecks() []Check {
	checks := []Check{platformToolCheck()}
	return append(checks, ProcessCheck(procutil.NotificationHosts()...))
}

func platformToolCheck() Check {
	switch runtime.GOOS {
	case "windows":
		return ToolCheck("powershell", true, pathutil.SystemDirs()...)
	case "darwin":
		return ToolCheck("osascript", false, pathutil.SystemDirs()...)
	default:
		return ToolCheck("notify-send", false, pathutil.SystemDirs()...)
	}
}
