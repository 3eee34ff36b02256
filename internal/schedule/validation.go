package schedule

import (
	"fmt"
	"strings"
)

// Validate checks if the Row is internally consistent
func (r *Row) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.StartSeconds < 0 {
		return fmt.Errorf("start must not be negative, got %g", r.StartSeconds)
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("duration must not be negative, got %g", r.DurationSeconds)
	}
	if r.LoopDepth < 0 {
		return fmt.Errorf("loop depth must not be negative, got %d", r.LoopDepth)
	}
	if r.LoopEnd != nil {
		if *r.LoopEnd <= r.Index {
			return fmt.Errorf("loop end %d must follow its start", *r.LoopEnd)
		}
		if r.Iterations < 1 {
			return fmt.Errorf("loop must run at least once, got %d", r.Iterations)
		}
	}
	return nil
}

// Validate checks if the Schedule is valid
func (s *Schedule) Validate() error {
	if strings.TrimSpace(s.RecipeID) == "" {
		return fmt.Errorf("recipe id cannot be empty")
	}
	if strings.TrimSpace(s.Fingerprint) == "" {
		return fmt.Errorf("fingerprint cannot be empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("schedule must have at least one step")
	}

	var prev float64
	for i := range s.Steps {
		row := &s.Steps[i]
		if row.Index != i {
			return fmt.Errorf("step at position %d has index %d", i, row.Index)
		}
		if err := row.Validate(); err != nil {
			return fmt.Errorf("step %d is invalid: %w", i, err)
		}
		if row.StartSeconds < prev {
			return fmt.Errorf("step %d starts before step %d", i, i-1)
		}
		prev = row.StartSeconds
		if row.LoopEnd != nil && *row.LoopEnd >= len(s.Steps) {
			return fmt.Errorf("step %d closes at %d, past the last step", i, *row.LoopEnd)
		}
	}

	if s.TotalSeconds < prev {
		return fmt.Errorf("total %g is shorter than the last start %g", s.TotalSeconds, prev)
	}
	return nil
}
