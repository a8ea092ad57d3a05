// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// executableName adds the .exe extension on Windows if not present.
func executableName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(executableName(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInDirs looks for a tool in each of dirs in order.
// Returns the full path of the first regular file found, empty string otherwise.
func SearchToolInDirs(toolName string, dirs ...string) string {
	exeName := executableName(toolName)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		fullPath := filepath.Join(dir, exeName)
		if info, err := os.Stat(fullPath); err == nil && info.Mode().IsRegular() {
			return fullPath
		}
	}
	return ""
}

// FindTool searches PATH and then dirs.
func FindTool(toolName string, dirs ...string) string {
	if path := FindToolInPath(toolName); path != "" {
		return path
	}
	return SearchToolInDirs(toolName, dirs...)
}

// SystemDirs returns the installation directories of the notification
// tools on the current platform.
func SystemDirs() []string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return []string{
			filepath.Join(root, "System32", "WindowsPowerShell", "v1.0"),
			filepath.Join(root, "SysWOW64", "WindowsPowerShell", "v1.0"),
		}
	}
	return []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/opt/homebrew/bin",
	}
}

// GetInstallSuggestion returns a suggestion for how to install a missing tool.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"powershell":        "Windows PowerShell ships with Windows; check that %SystemRoot%\\System32\\WindowsPowerShell\\v1.0 exists",
		"notify-send":       "Install libnotify (e.g. apt install libnotify-bin)",
		"osascript":         "osascript ships with macOS",
		"terminal-notifier": "Install from https://github.com/julienXX/terminal-notifier",
	}

	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}
