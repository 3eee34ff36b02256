package analysis

import (
	stderrors "errors"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// StructureResult holds the per-step structural diagnostics
type StructureResult struct {
	Reasons []Reason
}

// HasErrors reports whether any reason is error-kind
func (r StructureResult) HasErrors() bool {
	for _, reason := range r.Reasons {
		if reason.IsError() {
			return true
		}
	}
	return false
}

// StructureValidator checks that every step exists and names an action
type StructureValidator struct{}

// Validate records one reason per offending step and never stops early.
// An empty recipe yields no reasons; the analyzer flags it.
func (StructureValidator) Validate(r recipe.Recipe) StructureResult {
	var res StructureResult
	for i := 0; i < r.Len(); i++ {
		step := r.Step(i)
		if step == nil {
			res.Reasons = append(res.Reasons, errorAt(i, errors.ErrCodeStructNullStep, "step is null"))
			continue
		}

		_, err := step.ActionID()
		switch {
		case stderrors.Is(err, recipe.ErrPropertyAbsent):
			res.Reasons = append(res.Reasons, errorAt(i, errors.ErrCodeStructNoAction, "step has no action"))
		case stderrors.Is(err, recipe.ErrPropertyNull):
			res.Reasons = append(res.Reasons, errorAt(i, errors.ErrCodeStructNullAction, "step action is null"))
		}
	}
	return res
}
