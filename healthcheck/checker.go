package healthcheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jongio/toastnotifier/logutil"
)

var log = logutil.NewLogger("healthcheck")

// Checker runs a fixed set of checks.
type Checker struct {
	checks  []Check
	timeout time.Duration
}

// NewChecker creates a checker; a timeout <= 0 uses DefaultTimeout.
func NewChecker(timeout time.Duration, checks ...Check) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{checks: checks, timeout: timeout}
}

// Run executes every check concurrently, each bounded by the checker's
// timeout, and returns the results in check order.
func (c *Checker) Run(ctx context.Context) Report {
	results := make([]Result, len(c.checks))
	sem := make(chan struct{}, maxConcurrentChecks)

	var wg sync.WaitGroup
	for i, check := range c.checks {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.runCheck(ctx, check)
		})
	}
	wg.Wait()

	report := Report{Status: HealthStatusHealthy, Checks: results}
	for _, r := range results {
		report.Status = Worse(report.Status, r.Status)
	}
	return report
}

func (c *Checker) runCheck(ctx context.Context, check Check) (result Result) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = Result{Status: HealthStatusUnhealthy, Message: fmt.Sprintf("check panicked: %v", r)}
		}
		result.Name = check.Name
		result.Duration = time.Since(start)
		if result.Status == "" {
			result.Status = HealthStatusUnhealthy
		}
		recordHealthCheck(result)
		log.Debug("check finished", "check", check.Name, "status", result.Status, "duration", result.Duration)
	}()
	return check.Run(ctx)
}
