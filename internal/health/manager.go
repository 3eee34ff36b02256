package health

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Entry is one named check result, in registration order
type Entry struct {
	Name      string                 `json:"name" yaml:"name"`
	Status    Status                 `json:"status" yaml:"status"`
	Message   string                 `json:"message" yaml:"message"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	LatencyMS int64                  `json:"latency_ms" yaml:"latency_ms"`
}

// Manager coordinates checks and aggregates results.
// It runs checks in parallel, bounded by a worker limit, each with a timeout.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
	workers  int
	mu       sync.RWMutex
}

// NewManager creates a manager with a 5-second timeout and one worker per CPU.
func NewManager() *Manager {
	return &Manager{
		checkers: make([]Checker, 0),
		timeout:  5 * time.Second,
		workers:  runtime.GOMAXPROCS(0),
	}
}

// WithTimeout sets a custom per-check timeout.
func (m *Manager) WithTimeout(timeout time.Duration) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return m
}

// WithWorkers sets how many checks run at once. Values below one mean one.
func (m *Manager) WithWorkers(n int) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 1 {
		n = 1
	}
	m.workers = n
	return m
}

// AddChecker registers a new checker.
func (m *Manager) AddChecker(checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, checker)
}

// Check runs all registered checks and returns their results in registration
// order. A check that ignores its deadline still delays Check; a cancelled ctx
// marks checks that have not started as unhealthy.
func (m *Manager) Check(ctx context.Context) []Entry {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	timeout, workers := m.timeout, m.workers
	m.mu.RUnlock()

	entries := make([]Entry, len(checkers))
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, c := range checkers {
		i, c := i, c
		g.Go(func() error {
			entries[i] = run(ctx, c, timeout)
			return nil
		})
	}

	_ = g.Wait()
	return entries
}

func run(ctx context.Context, c Checker, timeout time.Duration) Entry {
	var result *Result
	start := time.Now()
	if err := ctx.Err(); err != nil {
		result = Unhealthy("check cancelled").WithDetail("error", err.Error())
	} else {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		result = c.Check(checkCtx)
		cancel()
	}

	latency := result.Latency
	if latency == 0 {
		latency = time.Since(start)
	}
	return Entry{
		Name:      c.Name(),
		Status:    result.Status,
		Message:   result.Message,
		Details:   result.Details,
		LatencyMS: latency.Milliseconds(),
	}
}

// OverallStatus determines the project status from all check results:
// unhealthy if any check is unhealthy, else degraded if any is degraded.
func OverallStatus(entries []Entry) Status {
	hasDegraded := false
	for _, e := range entries {
		if e.Status == StatusUnhealthy {
			return StatusUnhealthy
		}
		if e.Status == StatusDegraded {
			hasDegraded = true
		}
	}

	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// CheckNames returns the names of all registered checkers.
func (m *Manager) CheckNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.checkers))
	for i, checker := range m.checkers {
		names[i] = checker.Name()
	}
	return names
}

// Count returns the number of registered checkers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.checkers)
}
