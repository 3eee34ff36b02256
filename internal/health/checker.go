// Package health runs project checks before recipes go to the sequencer: the
// schema loads and every recipe in the project analyzes cleanly.
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewSchemaChecker(path))
//	manager.AddChecker(health.NewRecipeChecker(recipePath, s))
//
//	entries := manager.Check(ctx)
//	status := health.OverallStatus(entries)
package health

import (
	"context"
	"time"
)

// Checker defines the interface for one project check.
type Checker interface {
	// Name returns the unique name of this check, usually the file it inspects.
	Name() string

	// Check performs the check. It should respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status represents the check status.
type Status string

const (
	// StatusHealthy means nothing needs attention.
	StatusHealthy Status = "healthy"

	// StatusDegraded means the item is usable but carries warnings.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means the item cannot be used.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Result represents the result of a check.
type Result struct {
	Status  Status
	Message string

	// Details holds structured information such as step counts or error codes.
	Details map[string]interface{}

	// Latency is how long the check took to complete.
	Latency time.Duration
}

// NewResult creates a new check result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the result and returns the result for chaining.
func (r *Result) WithDetail(key string, value interface{}) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
