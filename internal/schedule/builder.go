package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// ActionNamer resolves display names for action ids
type ActionNamer interface {
	ActionName(id int16) string
}

// Build creates a Schedule from an analysis snapshot.
// Invalid snapshots are refused with a RECIPE-010 error listing their diagnostics.
func Build(snap *analysis.Snapshot, names ActionNamer) (*Schedule, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required for schedule generation")
	}
	if !snap.IsValid {
		details := make([]string, 0, len(snap.Reasons))
		for _, r := range snap.Reasons {
			details = append(details, r.String())
		}
		return nil, errors.NewRecipeInvalidError(details...)
	}

	fingerprint, err := snap.Recipe.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("fingerprint recipe: %w", err)
	}
	id, err := snap.Recipe.ID()
	if err != nil {
		return nil, fmt.Errorf("derive recipe id: %w", err)
	}

	rows := make([]Row, 0, snap.StepCount)
	for i, step := range snap.Recipe.Steps() {
		row, err := buildRow(snap, names, i, step)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s := &Schedule{
		RecipeID:     id.String(),
		Fingerprint:  fingerprint,
		TotalSeconds: snap.TotalDuration.Seconds(),
		Steps:        rows,
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return s, nil
}

func buildRow(snap *analysis.Snapshot, names ActionNamer, i int, step *recipe.Step) (Row, error) {
	if step == nil {
		return Row{}, errors.NewRecipeInvalidError(fmt.Sprintf("step %d is null", i))
	}
	action, err := step.ActionID()
	if err != nil {
		return Row{}, errors.NewRecipeInvalidError(fmt.Sprintf("step %d: %v", i, err))
	}

	start, _ := snap.StartTime(i)
	row := Row{
		Index:        i,
		Action:       action,
		Name:         names.ActionName(action),
		StartSeconds: start.Seconds(),
		LongLasting:  step.DeployDuration() == recipe.LongLasting,
		LoopDepth:    snap.LoopTree.Depth(i),
	}

	if row.LongLasting {
		if secs, err := step.Float(recipe.ColumnStepDuration); err == nil && secs > 0 {
			row.DurationSeconds = analysis.SecondsToDuration(secs).Seconds()
		}
	}

	if node, ok := snap.LoopTree.ByStartIndex(i); ok && node.Status == analysis.LoopValid {
		row.Iterations = node.EffectiveIterationCount
		row.LoopEnd = node.EndIndex
	}

	for _, col := range step.Columns() {
		if col == recipe.ColumnAction {
			continue
		}
		p, _ := step.Property(col)
		if p == nil {
			continue
		}
		if row.Properties == nil {
			row.Properties = make(map[string]string)
		}
		row.Properties[string(col)] = p.Raw()
	}

	return row, nil
}
