package recipe

import (
	"fmt"
	"strings"
)

// DeployKey is the reserved column that overrides an action's deploy marker
const DeployKey = "deploy"

// Schema types columns and supplies per-action defaults while decoding.
type Schema interface {
	ColumnType(col ColumnID) PropertyType
	DeployDurationFor(actionID int16) DeployDuration
}

// builtinSchema types the well-known columns when no schema is supplied
type builtinSchema struct{}

func (builtinSchema) ColumnType(col ColumnID) PropertyType {
	switch col {
	case ColumnAction:
		return PropertyInt16
	case ColumnTask, ColumnStepDuration:
		return PropertyFloat
	default:
		return PropertyText
	}
}

func (builtinSchema) DeployDurationFor(int16) DeployDuration {
	return Immediate
}

// cell is one decoded key/value before typing; null marks a null property
type cell struct {
	col  ColumnID
	raw  string
	null bool
}

// buildStep types decoded cells through the schema and resolves the deploy marker
func buildStep(schema Schema, cells []cell) (*Step, error) {
	if schema == nil {
		schema = builtinSchema{}
	}

	props := make(map[ColumnID]*Property, len(cells))
	var deployOverride *DeployDuration
	for _, c := range cells {
		if string(c.col) == DeployKey {
			if c.null {
				continue
			}
			d, err := ParseDeployDuration(c.raw)
			if err != nil {
				return nil, err
			}
			deployOverride = &d
			continue
		}
		if c.null {
			props[c.col] = nil
			continue
		}
		p := NewProperty(schema.ColumnType(c.col), c.raw)
		props[c.col] = &p
	}

	step := NewStep(Immediate, props)
	if deployOverride != nil {
		return step.WithDeployDuration(*deployOverride), nil
	}
	if id, err := step.ActionID(); err == nil {
		return step.WithDeployDuration(schema.DeployDurationFor(id)), nil
	}
	return step, nil
}

// defaultDeploy is the marker buildStep would assign s without an override
func defaultDeploy(schema Schema, s *Step) DeployDuration {
	if schema == nil {
		schema = builtinSchema{}
	}
	if id, err := s.ActionID(); err == nil {
		return schema.DeployDurationFor(id)
	}
	return Immediate
}

// encodeCells flattens a step for the encoders. The deploy marker is written
// only when it differs from the schema default for the step's action.
func encodeCells(s *Step, schema Schema) []cell {
	cols := s.Columns()
	cells := make([]cell, 0, len(cols)+1)
	for _, col := range cols {
		p := s.properties[col]
		if p == nil {
			cells = append(cells, cell{col: col, null: true})
			continue
		}
		cells = append(cells, cell{col: col, raw: p.raw})
	}
	if s.deploy != defaultDeploy(schema, s) {
		cells = append(cells, cell{col: DeployKey, raw: s.deploy.String()})
	}
	return cells
}

// Format is a recipe file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists the recipe formats the repository reads and writes
var Formats = []Format{FormatYAML, FormatCSV}

// FormatForPath picks the format from a file extension
func FormatForPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML, nil
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("no recipe format for %q", path)
	}
}
