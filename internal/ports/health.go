package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateChecker is returned when attempting to register a health checker
// with a name that is already registered.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by components that can report their health.
// Adapters register themselves with the HealthRegistry at startup.
//
// The dog API adapter is the only checker today:
//
//	func (c *DogCEOClient) Name() string { return "dog-api" }
//
//	func (c *DogCEOClient) Check(ctx context.Context) error {
//	    _, err := c.ListBreeds(ctx)
//	    return err
//	}
type HealthChecker interface {
	// Name returns a unique identifier for this health check.
	// Used in health check responses to identify which component failed.
	Name() string

	// Check performs the health check and returns an error if unhealthy.
	// Implementations should respect context cancellation and deadlines.
	// A nil return indicates the component is healthy.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates health checks from multiple components.
type HealthRegistry interface {
	// Register adds a health checker to the registry.
	// Returns an error if a checker with the same name is already registered.
	Register(checker HealthChecker) error

	// CheckAll runs all registered health checks and returns aggregated results.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	// HealthStatusHealthy indicates all checks passed.
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusUnhealthy indicates critical checks failed.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult contains the aggregated health check results.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// HealthOption configures a DefaultHealthRegistry.
type HealthOption func(*DefaultHealthRegistry)

// WithCheckTimeout bounds every individual check. Zero disables the bound and
// leaves only the caller's context deadline in effect.
func WithCheckTimeout(d time.Duration) HealthOption {
	return func(r *DefaultHealthRegistry) {
		r.checkTimeout = d
	}
}

// DefaultHealthRegistry runs its checkers concurrently on every CheckAll.
// It is safe for concurrent use.
type DefaultHealthRegistry struct {
	mu           sync.RWMutex
	checkers     map[string]HealthChecker
	checkTimeout time.Duration
}

// NewHealthRegistry returns an empty registry.
func NewHealthRegistry(opts ...HealthOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{
		checkers: make(map[string]HealthChecker),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds checker under its Name. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	name := checker.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
	}
	r.checkers[name] = checker

	return nil
}

// CheckAll runs every checker and waits for all of them. One failing check
// does not cancel the others; each gets its own result.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	names := make([]string, 0, len(r.checkers))
	checkers := make([]HealthChecker, 0, len(r.checkers))
	for name, c := range r.checkers {
		names = append(names, name)
		checkers = append(checkers, c)
	}
	r.mu.RUnlock()

	results := make([]*CheckResult, len(checkers))

	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			results[i] = r.runCheck(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}
	for i, name := range names {
		result.Checks[name] = results[i]
		if results[i].Status == HealthStatusUnhealthy {
			result.Status = HealthStatusUnhealthy
		}
	}

	return result
}

func (r *DefaultHealthRegistry) runCheck(ctx context.Context, c HealthChecker) *CheckResult {
	if r.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.checkTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.Check(ctx)

	res := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}
	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}
