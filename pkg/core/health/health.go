// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     health
// Description: Named health probes for the workbench and their aggregate
//              report served on /api/v1/health
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status of a single probe or of the whole report
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// severity orders statuses so the report can take the worst one
func (s Status) severity() int {
	switch s {
	case StatusDegraded:
		return 1
	case StatusUnhealthy:
		return 2
	default:
		return 0
	}
}

// CheckResult is the outcome of one probe
type CheckResult struct {
	Name       string                 `json:"name"`
	Status     Status                 `json:"status"`
	Message    string                 `json:"message,omitempty"`
	DurationMS float64                `json:"duration_ms"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Check probes one aspect of the service. Name and duration are filled in
// by the registry.
type Check func(ctx context.Context) CheckResult

// Report aggregates every probe of a registry
type Report struct {
	Service       string        `json:"service"`
	Version       string        `json:"version"`
	Status        Status        `json:"status"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Checks        []CheckResult `json:"checks"`
}

// Healthy reports whether no probe is unhealthy. Degraded still serves.
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// Registry holds the named probes of one service
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]Check
	service string
	version string
	started time.Time
}

// NewRegistry creates an empty registry for service at version
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checks:  make(map[string]Check),
		service: service,
		version: version,
		started: time.Now(),
	}
}

// Register adds or replaces the probe called name
func (r *Registry) Register(name string, check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = check
}

// Check runs every probe concurrently and reports them sorted by name. The
// overall status is the worst probe status.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	checks := make([]Check, len(names))
	for i, name := range names {
		checks[i] = r.checks[name]
	}
	r.mu.RUnlock()

	results := make([]CheckResult, len(names))
	var wg sync.WaitGroup
	for i := range checks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()
			result := checks[i](ctx)
			result.Name = names[i]
			result.DurationMS = float64(time.Since(start).Microseconds()) / 1000
			results[i] = result
		}(i)
	}
	wg.Wait()

	report := &Report{
		Service:       r.service,
		Version:       r.version,
		Status:        StatusHealthy,
		UptimeSeconds: time.Since(r.started).Seconds(),
		Checks:        results,
	}
	for _, result := range results {
		if result.Status.severity() > report.Status.severity() {
			report.Status = result.Status
		}
	}
	return report
}

// AlwaysHealthy reports that the process answers at all
func AlwaysHealthy() Check {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "Serving"}
	}
}

// ThresholdCheck reports degraded when value() exceeds limit. A limit of
// zero disables the check.
func ThresholdCheck(limit int, value func() int) Check {
	return func(ctx context.Context) CheckResult {
		current := value()
		result := CheckResult{
			Status:  StatusHealthy,
			Details: map[string]interface{}{"value": current, "limit": limit},
		}
		if limit > 0 && current > limit {
			result.Status = StatusDegraded
			result.Message = fmt.Sprintf("%d exceeds %d", current, limit)
		}
		return result
	}
}
