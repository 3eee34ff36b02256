// Package analysis turns a flat recipe into a validated, loop-aware timeline.
//
// Analyze runs four phases in a fixed order, each reading only the previous
// phase's output:
//
//	StructureValidator -> LoopParser -> LoopSemanticEvaluator -> TimingCalculator
//
// and indexes the final loop nodes in a LoopTree. The whole pipeline is a pure
// function of the recipe: it never logs, never fails, and is safe to call from
// any number of goroutines. Callers re-run it after every edit.
package analysis

import (
	"time"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// Flags summarize recipe-wide conditions
type Flags uint8

const (
	FlagEmptyRecipe Flags = 1 << iota
	FlagLoopIntegrityCompromised
	FlagMaxDepthExceeded
)

// Has reports whether all bits of f are set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Names lists the set flags
func (fl Flags) Names() []string {
	var names []string
	if fl.Has(FlagEmptyRecipe) {
		names = append(names, "empty_recipe")
	}
	if fl.Has(FlagLoopIntegrityCompromised) {
		names = append(names, "loop_integrity_compromised")
	}
	if fl.Has(FlagMaxDepthExceeded) {
		names = append(names, "max_depth_exceeded")
	}
	return names
}

// Snapshot is the complete result of one analysis run
type Snapshot struct {
	Recipe         recipe.Recipe
	StepCount      int
	LoopTree       *LoopTree
	StepStartTimes []time.Duration
	TotalDuration  time.Duration
	Reasons        []Reason
	Flags          Flags
	IsValid        bool
}

// StartTime returns the start offset of step i
func (s *Snapshot) StartTime(i int) (time.Duration, bool) {
	if i < 0 || i >= len(s.StepStartTimes) {
		return 0, false
	}
	return s.StepStartTimes[i], true
}

// Errors returns the error-kind reasons
func (s *Snapshot) Errors() []Reason {
	return s.filter(SeverityError)
}

// Warnings returns the warning-kind reasons
func (s *Snapshot) Warnings() []Reason {
	return s.filter(SeverityWarning)
}

// ReasonsForStep returns the reasons attached to step i
func (s *Snapshot) ReasonsForStep(i int) []Reason {
	var out []Reason
	for _, r := range s.Reasons {
		if r.StepIndex == i {
			out = append(out, r)
		}
	}
	return out
}

func (s *Snapshot) filter(sev Severity) []Reason {
	var out []Reason
	for _, r := range s.Reasons {
		if r.Severity == sev {
			out = append(out, r)
		}
	}
	return out
}

// Analyzer runs the analysis pipeline
type Analyzer struct {
	structure StructureValidator
	parser    LoopParser
	semantics LoopSemanticEvaluator
	timing    TimingCalculator
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLoopActions sets the action ids that bracket loops
func WithLoopActions(actions LoopActions) Option {
	return func(a *Analyzer) {
		a.parser.Actions = actions
	}
}

// NewAnalyzer creates an analyzer using DefaultLoopActions unless overridden
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{parser: LoopParser{Actions: DefaultLoopActions}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every phase and merges their diagnostics in phase order
func (a *Analyzer) Analyze(r recipe.Recipe) *Snapshot {
	structure := a.structure.Validate(r)
	parsed := a.parser.Parse(r)
	sem := a.semantics.Evaluate(parsed)
	timing := a.timing.Calculate(r, sem)

	var reasons []Reason
	reasons = append(reasons, structure.Reasons...)
	reasons = append(reasons, parsed.Reasons...)
	reasons = append(reasons, sem.Reasons...)

	var flags Flags
	if r.Len() == 0 {
		flags |= FlagEmptyRecipe
		reasons = append(reasons, warningAt(NoStep, errors.ErrCodeRecipeEmpty, "recipe has no steps"))
	}
	if sem.LoopIntegrityCompromised {
		flags |= FlagLoopIntegrityCompromised
	}
	if sem.MaxDepthExceeded {
		flags |= FlagMaxDepthExceeded
	}

	return &Snapshot{
		Recipe:         r,
		StepCount:      r.Len(),
		LoopTree:       NewLoopTree(timing.UpdatedNodes),
		StepStartTimes: timing.StepStartTimes,
		TotalDuration:  timing.TotalDuration,
		Reasons:        reasons,
		Flags:          flags,
		IsValid:        !structure.HasErrors() && flags == 0,
	}
}

// Analyze runs the pipeline with the default loop actions
func Analyze(r recipe.Recipe) *Snapshot {
	return NewAnalyzer().Analyze(r)
}
