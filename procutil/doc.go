// Package procutil inspects running processes across platforms.
//
// It uses github.com/shirou/gopsutil so that process checks stay reliable on
// Windows, where os.FindProcess succeeds for stale PIDs.
//
// The notifier uses it to tell whether a desktop component that displays
// notifications is running:
//
//	found, err := procutil.FindRunning(ctx, procutil.NotificationHosts()...)
//	if err == nil && len(found) == 0 {
//	    fmt.Println("no notification host is running")
//	}
package procutil
