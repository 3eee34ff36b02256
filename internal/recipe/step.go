package recipe

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lookup errors returned by the typed Step accessors
var (
	ErrPropertyAbsent = errors.New("property not present")
	ErrPropertyNull   = errors.New("property is null")
)

// DeployDuration tells whether a step holds the timeline
type DeployDuration int

const (
	// Immediate steps take no time on the timeline
	Immediate DeployDuration = iota
	// LongLasting steps hold the timeline for their step_duration
	LongLasting
)

// String returns the schema name of the marker
func (d DeployDuration) String() string {
	switch d {
	case Immediate:
		return "immediate"
	case LongLasting:
		return "long_lasting"
	default:
		return "unknown"
	}
}

// ParseDeployDuration parses a schema deploy marker
func ParseDeployDuration(s string) (DeployDuration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate", "":
		return Immediate, nil
	case "long_lasting", "longlasting", "long-lasting":
		return LongLasting, nil
	default:
		return Immediate, fmt.Errorf("unknown deploy duration %q: must be immediate or long_lasting", s)
	}
}

// Step is one immutable row of a recipe.
// A present key with a nil property means "not applicable to this action".
type Step struct {
	properties map[ColumnID]*Property
	deploy     DeployDuration
}

// NewStep creates a step, copying the given properties
func NewStep(deploy DeployDuration, props map[ColumnID]*Property) *Step {
	s := &Step{
		properties: make(map[ColumnID]*Property, len(props)),
		deploy:     deploy,
	}
	for col, p := range props {
		if p == nil {
			s.properties[col] = nil
			continue
		}
		v := *p
		s.properties[col] = &v
	}
	return s
}

// Property returns the property for col. ok is false when the column is absent;
// a nil property with ok == true is a null cell.
func (s *Step) Property(col ColumnID) (prop *Property, ok bool) {
	prop, ok = s.properties[col]
	return prop, ok
}

// DeployDuration returns the step's deploy marker
func (s *Step) DeployDuration() DeployDuration {
	return s.deploy
}

// Columns returns the present columns, action first then alphabetical
func (s *Step) Columns() []ColumnID {
	cols := make([]ColumnID, 0, len(s.properties))
	for col := range s.properties {
		cols = append(cols, col)
	}
	sortColumns(cols)
	return cols
}

// Int16 reads col as an integer
func (s *Step) Int16(col ColumnID) (int16, error) {
	p, err := s.lookup(col)
	if err != nil {
		return 0, err
	}
	return p.Int16()
}

// Float reads col as a float
func (s *Step) Float(col ColumnID) (float64, error) {
	p, err := s.lookup(col)
	if err != nil {
		return 0, err
	}
	return p.Float()
}

// ActionID resolves the step's action id
func (s *Step) ActionID() (int16, error) {
	id, err := s.Int16(ColumnAction)
	if err != nil {
		return 0, fmt.Errorf("action: %w", err)
	}
	return id, nil
}

// With returns a copy of the step with col set to p (nil for a null cell)
func (s *Step) With(col ColumnID, p *Property) *Step {
	next := NewStep(s.deploy, s.properties)
	if p == nil {
		next.properties[col] = nil
		return next
	}
	v := *p
	next.properties[col] = &v
	return next
}

// Without returns a copy of the step with col removed
func (s *Step) Without(col ColumnID) *Step {
	next := NewStep(s.deploy, s.properties)
	delete(next.properties, col)
	return next
}

// WithDeployDuration returns a copy of the step with a different deploy marker
func (s *Step) WithDeployDuration(d DeployDuration) *Step {
	return NewStep(d, s.properties)
}

// Equal reports structural equality. Two nil steps are equal.
func (s *Step) Equal(other *Step) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.deploy != other.deploy || len(s.properties) != len(other.properties) {
		return false
	}
	for col, p := range s.properties {
		q, ok := other.properties[col]
		if !ok {
			return false
		}
		if p == nil || q == nil {
			if p != q {
				return false
			}
			continue
		}
		if *p != *q {
			return false
		}
	}
	return true
}

func (s *Step) lookup(col ColumnID) (*Property, error) {
	p, ok := s.properties[col]
	if !ok {
		return nil, ErrPropertyAbsent
	}
	if p == nil {
		return nil, ErrPropertyNull
	}
	return p, nil
}

func sortColumns(cols []ColumnID) {
	sort.Slice(cols, func(i, j int) bool {
		if cols[i] == ColumnAction || cols[j] == ColumnAction {
			return cols[i] == ColumnAction && cols[j] != ColumnAction
		}
		return cols[i] < cols[j]
	})
}
