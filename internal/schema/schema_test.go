package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

const minimalSchema = `
loop: {for_loop: 1, end_for_loop: 2}
columns:
  - {id: action, type: int16}
  - {id: task, type: float}
  - {id: step_duration, type: float}
actions:
  - {id: 1, name: For}
  - {id: 2, name: EndFor}
  - {id: 3, name: Soak, deploy: long_lasting}
`

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, int16(120), s.Loop.ForLoop)
	assert.Equal(t, int16(130), s.Loop.EndForLoop)
	assert.Equal(t, recipe.PropertyInt16, s.ColumnType(recipe.ColumnAction))
	assert.Equal(t, recipe.PropertyFloat, s.ColumnType(recipe.ColumnStepDuration))
	assert.Equal(t, recipe.PropertyText, s.ColumnType("unknown_column"))
	assert.Equal(t, recipe.LongLasting, s.DeployDurationFor(10))
	assert.Equal(t, recipe.Immediate, s.DeployDurationFor(120))
	assert.Equal(t, recipe.Immediate, s.DeployDurationFor(9999))
	assert.Equal(t, "ForLoop", s.ActionName(120))
	assert.Equal(t, "#77", s.ActionName(77))
}

func TestLoopActions(t *testing.T) {
	s, err := Parse([]byte(minimalSchema))
	require.NoError(t, err)
	assert.Equal(t, analysis.LoopActions{ForLoop: 1, EndForLoop: 2}, s.LoopActions())
	assert.Equal(t, analysis.DefaultLoopActions, Default().LoopActions())
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestStepLabel(t *testing.T) {
	s := Default()
	p := recipe.Int16Property(10)
	step := recipe.NewStep(recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnAction: &p})

	assert.Equal(t, "Wait", s.StepLabel(step))
	assert.Equal(t, "<null step>", s.StepLabel(nil))
	assert.Equal(t, "<no action>", s.StepLabel(recipe.NewStep(recipe.Immediate, nil)))
}

func TestSortedActions(t *testing.T) {
	s, err := Parse([]byte(minimalSchema))
	require.NoError(t, err)

	actions := s.SortedActions()
	require.Len(t, actions, 3)
	for i := 1; i < len(actions); i++ {
		assert.Less(t, actions[i-1].ID, actions[i].ID)
	}
}

func replaceOnce(from, to string) func(string) string {
	return func(s string) string { return strings.Replace(s, from, to, 1) }
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "duplicate action",
			mutate:  func(s string) string { return s + "  - {id: 3, name: Again}\n" },
			wantMsg: "duplicate action id 3",
		},
		{
			name:    "loop id not declared",
			mutate:  replaceOnce("end_for_loop: 2", "end_for_loop: 9"),
			wantMsg: "loop action 9 is not declared",
		},
		{
			name:    "same loop ids",
			mutate:  replaceOnce("end_for_loop: 2", "end_for_loop: 1"),
			wantMsg: "must differ",
		},
		{
			name:    "missing required column",
			mutate:  replaceOnce("  - {id: task, type: float}\n", ""),
			wantMsg: `required column "task" is missing`,
		},
		{
			name:    "wrong column type",
			mutate:  replaceOnce("{id: task, type: float}", "{id: task, type: text}"),
			wantMsg: `column "task" must be float`,
		},
		{
			name:    "unknown column type",
			mutate:  replaceOnce("columns:\n", "columns:\n  - {id: flag, type: bool}\n"),
			wantMsg: `column "flag"`,
		},
		{
			name:    "unchanged document is valid",
			mutate:  func(s string) string { return s },
			wantMsg: "",
		},
		{
			name:    "bad deploy",
			mutate:  replaceOnce("deploy: long_lasting", "deploy: forever"),
			wantMsg: "unknown deploy duration",
		},
		{
			name:    "reserved column",
			mutate:  replaceOnce("columns:\n", "columns:\n  - {id: deploy, type: text}\n"),
			wantMsg: "reserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(minimalSchema)))
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeSchemaInvalid, errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(minimalSchema + "extra: true\n"))
	require.Error(t, err)
	assert.Empty(t, errors.CodeOf(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSchema), 0600))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, recipe.LongLasting, s.DeployDurationFor(3))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, errors.ErrCodeSchemaNotFound, errors.CodeOf(err))

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("loop: [\n"), 0600))
	_, err = Load(broken)
	assert.Equal(t, errors.ErrCodeSchemaUnmarshal, errors.CodeOf(err))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(strings.Replace(minimalSchema, "end_for_loop: 2", "end_for_loop: 1", 1)), 0600))
	_, err = Load(invalid)
	assert.Equal(t, errors.ErrCodeSchemaInvalid, errors.CodeOf(err))
}
