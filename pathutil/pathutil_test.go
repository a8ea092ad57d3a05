// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeTool(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, executableName(name))
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to write tool: %v", err)
	}
	return path
}

func TestExecutableName(t *testing.T) {
	got := executableName("powershell")
	if runtime.GOOS == "windows" {
		if got != "powershell.exe" {
			t.Errorf("executableName() = %q, want powershell.exe", got)
		}
		if executableName("powershell.EXE") != "powershell.EXE" {
			t.Error("executableName() added a second extension")
		}
		return
	}
	if got != "powershell" {
		t.Errorf("executableName() = %q, want powershell", got)
	}
}

func TestSearchToolInDirs(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeTool(t, second, "toast-helper")

	if got := SearchToolInDirs("toast-helper", "", first, second); got != want {
		t.Errorf("SearchToolInDirs() = %q, want %q", got, want)
	}

	if got := SearchToolInDirs("nonexistent-tool-xyz-12345", first, second); got != "" {
		t.Errorf("SearchToolInDirs() = %q, want empty", got)
	}
}

func TestSearchToolInDirs_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, executableName("toast-helper")), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := SearchToolInDirs("toast-helper", dir); got != "" {
		t.Errorf("SearchToolInDirs() = %q, want empty for a directory", got)
	}
}

func TestFindTool_FallsBackToDirs(t *testing.T) {
	dir := t.TempDir()
	want := writeTool(t, dir, "toast-helper-fallback")
	t.Setenv("PATH", t.TempDir())

	if got := FindTool("toast-helper-fallback", dir); got != want {
		t.Errorf("FindTool() = %q, want %q", got, want)
	}
}

func TestFindTool_PrefersPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools are not executable on Windows")
	}
	pathDir := t.TempDir()
	fallbackDir := t.TempDir()
	want := writeTool(t, pathDir, "toast-helper-path")
	writeTool(t, fallbackDir, "toast-helper-path")
	t.Setenv("PATH", pathDir)

	if got := FindTool("toast-helper-path", fallbackDir); got != want {
		t.Errorf("FindTool() = %q, want %q", got, want)
	}
}

func TestFindToolInPath_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
	}{
		{name: "empty string", toolName: ""},
		{name: "nonexistent tool", toolName: "nonexistent-tool-xyz-12345"},
		{name: "tool with spaces", toolName: "tool with spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindToolInPath(tt.toolName); got != "" {
				t.Errorf("FindToolInPath(%q) = %q, want empty", tt.toolName, got)
			}
		})
	}
}

func TestSystemDirs(t *testing.T) {
	dirs := SystemDirs()
	if len(dirs) == 0 {
		t.Fatal("SystemDirs() returned no directories")
	}
	if runtime.GOOS == "windows" {
		t.Setenv("SystemRoot", `D:\Win`)
		dirs = SystemDirs()
		if !strings.HasPrefix(dirs[0], `D:\Win`) {
			t.Errorf("SystemDirs()[0] = %q, want it under SystemRoot", dirs[0])
		}
	}
}

func TestGetInstallSuggestion(t *testing.T) {
	tests := []struct {
		toolName string
		contains string
	}{
		{toolName: "notify-send", contains: "libnotify"},
		{toolName: "powershell", contains: "WindowsPowerShell"},
		{toolName: "terminal-notifier", contains: "github.com"},
		{toolName: "unknown-tool-xyz", contains: "Please install unknown-tool-xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.toolName, func(t *testing.T) {
			suggestion := GetInstallSuggestion(tt.toolName)
			if !strings.Contains(suggestion, tt.contains) {
				t.Errorf("GetInstallSuggestion(%s) = %q, want it to contain %q", tt.toolName, suggestion, tt.contains)
			}
		})
	}
}
