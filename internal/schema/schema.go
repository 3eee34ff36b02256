// Package schema loads the column and action definitions that give recipe
// cells their types and mark which actions open and close loops.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// LoopIDs names the service actions that bracket a loop
type LoopIDs struct {
	ForLoop    int16 `yaml:"for_loop" json:"for_loop"`
	EndForLoop int16 `yaml:"end_for_loop" json:"end_for_loop"`
}

// Column declares one recipe column
type Column struct {
	ID   recipe.ColumnID `yaml:"id" json:"id"`
	Type string          `yaml:"type" json:"type"`
}

// Action declares one sequencer action
type Action struct {
	ID     int16  `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Deploy string `yaml:"deploy" json:"deploy"`
}

// Schema is the parsed configuration. Build it with Parse, Load or Default so
// the lookup indexes are populated.
type Schema struct {
	Loop    LoopIDs  `yaml:"loop" json:"loop"`
	Columns []Column `yaml:"columns" json:"columns"`
	Actions []Action `yaml:"actions" json:"actions"`

	columnTypes map[recipe.ColumnID]recipe.PropertyType
	actions     map[int16]Action
	deploy      map[int16]recipe.DeployDuration
}

var _ recipe.Schema = (*Schema)(nil)

// ColumnType returns the declared type of col, text for unknown columns
func (s *Schema) ColumnType(col recipe.ColumnID) recipe.PropertyType {
	if t, ok := s.columnTypes[col]; ok {
		return t
	}
	return recipe.PropertyText
}

// DeployDurationFor returns the deploy marker of an action, Immediate when unknown
func (s *Schema) DeployDurationFor(id int16) recipe.DeployDuration {
	return s.deploy[id]
}

// Action looks up an action by id
func (s *Schema) Action(id int16) (Action, bool) {
	a, ok := s.actions[id]
	return a, ok
}

// ActionName returns the action's name, or "#<id>" for unknown ids
func (s *Schema) ActionName(id int16) string {
	if a, ok := s.actions[id]; ok {
		return a.Name
	}
	return fmt.Sprintf("#%d", id)
}

// StepLabel names the action of a step for display
func (s *Schema) StepLabel(step *recipe.Step) string {
	if step == nil {
		return "<null step>"
	}
	id, err := step.ActionID()
	if err != nil {
		return "<no action>"
	}
	return s.ActionName(id)
}

// LoopActions returns the loop bracket ids for the analyzer
func (s *Schema) LoopActions() analysis.LoopActions {
	return analysis.LoopActions{ForLoop: s.Loop.ForLoop, EndForLoop: s.Loop.EndForLoop}
}

// SortedActions returns the actions ordered by id
func (s *Schema) SortedActions() []Action {
	out := make([]Action, len(s.Actions))
	copy(out, s.Actions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// index validates the declarations and builds the lookup maps
func (s *Schema) index() error {
	s.columnTypes = make(map[recipe.ColumnID]recipe.PropertyType, len(s.Columns))
	for i, c := range s.Columns {
		if strings.TrimSpace(string(c.ID)) == "" {
			return fmt.Errorf("column at index %d has an empty id", i)
		}
		if string(c.ID) == recipe.DeployKey {
			return fmt.Errorf("column %q is reserved", c.ID)
		}
		if _, dup := s.columnTypes[c.ID]; dup {
			return fmt.Errorf("duplicate column %q", c.ID)
		}
		t, err := recipe.ParsePropertyType(c.Type)
		if err != nil {
			return fmt.Errorf("column %q: %w", c.ID, err)
		}
		s.columnTypes[c.ID] = t
	}

	required := map[recipe.ColumnID]recipe.PropertyType{
		recipe.ColumnAction:       recipe.PropertyInt16,
		recipe.ColumnTask:         recipe.PropertyFloat,
		recipe.ColumnStepDuration: recipe.PropertyFloat,
	}
	for col, want := range required {
		got, ok := s.columnTypes[col]
		if !ok {
			return fmt.Errorf("required column %q is missing", col)
		}
		if got != want {
			return fmt.Errorf("column %q must be %s, got %s", col, want, got)
		}
	}

	s.actions = make(map[int16]Action, len(s.Actions))
	s.deploy = make(map[int16]recipe.DeployDuration, len(s.Actions))
	for _, a := range s.Actions {
		if _, dup := s.actions[a.ID]; dup {
			return fmt.Errorf("duplicate action id %d", a.ID)
		}
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("action %d has an empty name", a.ID)
		}
		d, err := recipe.ParseDeployDuration(a.Deploy)
		if err != nil {
			return fmt.Errorf("action %d (%s): %w", a.ID, a.Name, err)
		}
		s.actions[a.ID] = a
		s.deploy[a.ID] = d
	}

	if s.Loop.ForLoop == s.Loop.EndForLoop {
		return fmt.Errorf("for_loop and end_for_loop must differ, both are %d", s.Loop.ForLoop)
	}
	for _, id := range []int16{s.Loop.ForLoop, s.Loop.EndForLoop} {
		if _, ok := s.actions[id]; !ok {
			return fmt.Errorf("loop action %d is not declared in actions", id)
		}
	}
	return nil
}
