//go:build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

// NotificationHosts returns the names of the shell processes that display
// toast notifications.
func NotificationHosts() []string {
	return []string{"explorer.exe", "ShellExperienceHost.exe", "StartMenuExperienceHost.exe"}
}
