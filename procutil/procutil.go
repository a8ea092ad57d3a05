// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// IsProcessRunning checks if a process with the given PID is running.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}
	exists, err := process.PidExists(int32(pid))
	return err == nil && exists
}

// FindRunning returns the names among names that belong to a running
// process, in the order given. Names match case-insensitively and without
// a ".exe" suffix. Processes whose name cannot be read are skipped.
func FindRunning(ctx context.Context, names ...string) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	running := make(map[string]bool, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		running[normalizeName(name)] = true
	}

	var found []string
	for _, name := range names {
		if running[normalizeName(name)] && !slices.Contains(found, name) {
			found = append(found, name)
		}
	}
	return found, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}
