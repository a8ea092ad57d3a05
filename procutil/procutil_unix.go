//go:build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import "runtime"

// NotificationHosts returns the names of the processes that display desktop
// notifications: the notification center on macOS and the common
// freedesktop notification daemons elsewhere.
func NotificationHosts() []string {
	if runtime.GOOS == "darwin" {
		return []string{"NotificationCenter", "usernoted"}
	}
	return []string{
		"dunst",
		"mako",
		"swaync",
		"xfce4-notifyd",
		"notification-daemon",
		"notify-osd",
		"lxqt-notificationd",
		"gnome-shell",
		"plasmashell",
		"cinnamon",
	}
}
