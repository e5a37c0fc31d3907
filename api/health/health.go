// Package health runs named readiness checks for the API server.
package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents the result of an individual health check
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func(ctx context.Context) CheckResult

// Option configures a HealthChecker.
type Option func(*HealthChecker)

// WithCheckTimeout bounds each individual check.
func WithCheckTimeout(d time.Duration) Option {
	return func(hc *HealthChecker) { hc.checkTimeout = d }
}

// WithCacheTimeout sets how long a response is reused. Zero disables caching.
func WithCacheTimeout(d time.Duration) Option {
	return func(hc *HealthChecker) { hc.cacheTimeout = d }
}

// HealthChecker runs registered checks and caches the aggregate result.
type HealthChecker struct {
	version      string
	checkTimeout time.Duration
	cacheTimeout time.Duration

	mu       sync.RWMutex
	checks   map[string]CheckFunc
	cached   *HealthResponse
	cachedAt time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string, opts ...Option) *HealthChecker {
	hc := &HealthChecker{
		version:      version,
		checks:       make(map[string]CheckFunc),
		checkTimeout: 5 * time.Second,
		cacheTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(hc)
	}
	return hc
}

// RegisterCheck registers a new health check
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[name] = check
	hc.cached = nil
}

// Names returns the registered check names in order.
func (hc *HealthChecker) Names() []string {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PerformChecks runs the registered checks one after another. Checks read
// chain state, which is not safe for concurrent use.
func (hc *HealthChecker) PerformChecks(ctx context.Context) *HealthResponse {
	hc.mu.RLock()
	if hc.cached != nil && time.Since(hc.cachedAt) < hc.cacheTimeout {
		resp := hc.cached
		hc.mu.RUnlock()
		return resp
	}
	checks := make(map[string]CheckFunc, len(hc.checks))
	for name, check := range hc.checks {
		checks[name] = check
	}
	hc.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	overall := StatusHealthy
	for name, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, hc.checkTimeout)
		result := check(checkCtx)
		cancel()
		results[name] = result

		switch {
		case result.Status == StatusUnhealthy:
			overall = StatusUnhealthy
		case result.Status == StatusDegraded && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}

	resp := &HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Version:   hc.version,
		Checks:    results,
	}

	hc.mu.Lock()
	hc.cached = resp
	hc.cachedAt = time.Now()
	hc.mu.Unlock()

	return resp
}

// StoreCheck creates a health check that reads chain state through ping.
func StoreCheck(ping func(context.Context) error) CheckFunc {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		if err := ping(ctx); err != nil {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: "store query failed: " + err.Error(),
				Latency: time.Since(start).String(),
			}
		}
		return CheckResult{
			Status:  StatusHealthy,
			Message: "store OK",
			Latency: time.Since(start).String(),
		}
	}
}
