// Package recipe defines the immutable recipe model edited by the sequencer
// UI: an ordered list of steps, each an action plus typed properties.
//
// Every mutation returns a new Recipe. Steps are immutable and shared between
// versions; the step slice itself is never aliased.
package recipe

import (
	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Recipe is an ordered, immutable sequence of steps.
// A nil entry is a null step and is reported by analysis.
type Recipe struct {
	steps []*Step
}

// New creates a recipe from the given steps
func New(steps ...*Step) Recipe {
	return Recipe{steps: cloneSteps(steps, 0)}
}

// Len returns the number of steps
func (r Recipe) Len() int {
	return len(r.steps)
}

// Step returns the step at index i (nil for a null step)
func (r Recipe) Step(i int) *Step {
	return r.steps[i]
}

// Steps returns a copy of the step list
func (r Recipe) Steps() []*Step {
	return cloneSteps(r.steps, 0)
}

// Append returns a new recipe with s added at the end
func (r Recipe) Append(s *Step) Recipe {
	steps := cloneSteps(r.steps, 1)
	steps = append(steps, s)
	return Recipe{steps: steps}
}

// Insert returns a new recipe with s inserted before index i (i == Len appends)
func (r Recipe) Insert(i int, s *Step) (Recipe, error) {
	if i < 0 || i > len(r.steps) {
		return r, errors.NewStepIndexError(i, len(r.steps))
	}
	steps := make([]*Step, 0, len(r.steps)+1)
	steps = append(steps, r.steps[:i]...)
	steps = append(steps, s)
	steps = append(steps, r.steps[i:]...)
	return Recipe{steps: steps}, nil
}

// Remove returns a new recipe without the step at index i
func (r Recipe) Remove(i int) (Recipe, error) {
	if i < 0 || i >= len(r.steps) {
		return r, errors.NewStepIndexError(i, len(r.steps)-1)
	}
	steps := make([]*Step, 0, len(r.steps)-1)
	steps = append(steps, r.steps[:i]...)
	steps = append(steps, r.steps[i+1:]...)
	return Recipe{steps: steps}, nil
}

// Replace returns a new recipe with the step at index i replaced by s
func (r Recipe) Replace(i int, s *Step) (Recipe, error) {
	if i < 0 || i >= len(r.steps) {
		return r, errors.NewStepIndexError(i, len(r.steps)-1)
	}
	steps := cloneSteps(r.steps, 0)
	steps[i] = s
	return Recipe{steps: steps}, nil
}

// SetProperty returns a new recipe where step i has col set to p
func (r Recipe) SetProperty(i int, col ColumnID, p *Property) (Recipe, error) {
	if i < 0 || i >= len(r.steps) {
		return r, errors.NewStepIndexError(i, len(r.steps)-1)
	}
	base := r.steps[i]
	if base == nil {
		base = NewStep(Immediate, nil)
	}
	return r.Replace(i, base.With(col, p))
}

// Equal reports structural equality
func (r Recipe) Equal(other Recipe) bool {
	if len(r.steps) != len(other.steps) {
		return false
	}
	for i := range r.steps {
		if !r.steps[i].Equal(other.steps[i]) {
			return false
		}
	}
	return true
}

func cloneSteps(steps []*Step, extra int) []*Step {
	out := make([]*Step, len(steps), len(steps)+extra)
	copy(out, steps)
	return out
}
