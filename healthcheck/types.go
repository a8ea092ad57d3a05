// Package healthcheck verifies that this machine can display notifications.
package healthcheck

import (
	"context"
	"time"
)

const (
	// maxConcurrentChecks limits parallel check execution
	maxConcurrentChecks = 4

	// DefaultTimeout bounds a single check.
	DefaultTimeout = 5 * time.Second
)

// HealthStatus represents the outcome of a check or a whole report.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

var statusRank = map[HealthStatus]int{
	HealthStatusHealthy:   0,
	HealthStatusDegraded:  1,
	HealthStatusUnhealthy: 2,
}

// Worse returns the more severe of a and b.
func Worse(a, b HealthStatus) HealthStatus {
	if statusRank[b] > statusRank[a] {
		return b
	}
	return a
}

// Result is the outcome of one check.
type Result struct {
	Name       string        `json:"name" yaml:"name"`
	Status     HealthStatus  `json:"status" yaml:"status"`
	Message    string        `json:"message" yaml:"message"`
	Suggestion string        `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Duration   time.Duration `json:"-" yaml:"-"`
}

// Report collects the results of a run in check order. Status is the worst
// status of any check.
type Report struct {
	Status HealthStatus `json:"status" yaml:"status"`
	Checks []Result     `json:"checks" yaml:"checks"`
}

// Healthy reports whether no check was unhealthy. Degraded checks still let
// notifications be shown, possibly without some features.
func (r Report) Healthy() bool {
	return r.Status != HealthStatusUnhealthy
}

// Check is a named probe.
type Check struct {
	Name string
	Run  func(ctx context.Context) Result
}
