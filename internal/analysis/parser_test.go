package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

func parse(steps ...*recipe.Step) LoopParseResult {
	return LoopParser{Actions: DefaultLoopActions}.Parse(recipe.New(steps...))
}

func TestLoopParser_Balanced(t *testing.T) {
	res := parse(
		forLoop(2), // 0
		forLoop(3), // 1
		wait(1),    // 2
		endFor(),   // 3
		endFor(),   // 4
		forLoop(4), // 5
		endFor(),   // 6
	)

	assert.Empty(t, res.Reasons)
	require.Len(t, res.Nodes, 3)

	inner, outer, last := res.Nodes[0], res.Nodes[1], res.Nodes[2]

	assert.Equal(t, LoopNode{
		StartIndex: 1, EndIndex: intPtr(3), NestingDepth: 2, IterationCountRaw: 3,
		BodyStartIndex: 1, BodyEndIndex: 3, Status: LoopValid,
	}, inner)
	assert.Equal(t, LoopNode{
		StartIndex: 0, EndIndex: intPtr(4), NestingDepth: 1, IterationCountRaw: 2,
		BodyStartIndex: 0, BodyEndIndex: 4, Status: LoopValid,
	}, outer)
	assert.Equal(t, 1, last.NestingDepth)
	assert.Equal(t, 4, last.IterationCountRaw)
}

func TestLoopParser_Unclosed(t *testing.T) {
	res := parse(forLoop(2), forLoop(5), wait(1))

	require.Len(t, res.Nodes, 2)
	// popped innermost first
	assert.Equal(t, 1, res.Nodes[0].StartIndex)
	assert.Equal(t, 0, res.Nodes[1].StartIndex)
	for _, n := range res.Nodes {
		assert.Equal(t, LoopIncomplete, n.Status)
		assert.Nil(t, n.EndIndex)
		assert.Equal(t, 2, n.BodyEndIndex)
	}

	require.Len(t, res.Reasons, 2)
	assert.Equal(t, errors.ErrCodeLoopUnclosed, res.Reasons[0].Code)
	assert.Equal(t, 1, res.Reasons[0].StepIndex)
	assert.False(t, res.Reasons[0].IsError())
}

func TestLoopParser_OrphanEnd(t *testing.T) {
	res := parse(shutter(), endFor(), forLoop(2), endFor())

	require.Len(t, res.Nodes, 2)
	orphan := res.Nodes[0]
	assert.Equal(t, LoopOrphanEnd, orphan.Status)
	assert.Equal(t, 1, orphan.StartIndex)
	assert.Equal(t, 0, orphan.NestingDepth)
	assert.Equal(t, LoopValid, res.Nodes[1].Status)

	require.Len(t, res.Reasons, 1)
	assert.Equal(t, errors.ErrCodeLoopOrphanEnd, res.Reasons[0].Code)
}

func TestLoopParser_IterationCount(t *testing.T) {
	tests := []struct {
		name string
		step *recipe.Step
		want int
	}{
		{"integer", forLoop(3), 3},
		{"truncated", forLoop(3.9), 3},
		{"negative truncates toward zero", forLoop(-2.7), -2},
		{"unreadable defaults to one", forLoopRaw("three"), 1},
		{"absent defaults to one", step(actFor, recipe.Immediate, nil), 1},
		{"null defaults to one", step(actFor, recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnTask: nil}), 1},
		{"huge saturates", forLoop(1e12), 2147483647},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(tt.step, endFor())
			require.Len(t, res.Nodes, 1)
			assert.Equal(t, tt.want, res.Nodes[0].IterationCountRaw)
		})
	}
}

func TestLoopParser_UnresolvedActionIsSkipped(t *testing.T) {
	garbled := recipe.NewProperty(recipe.PropertyInt16, "1?0")
	broken := recipe.NewStep(recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnAction: &garbled})

	res := parse(forLoop(2), broken, recipe.NewStep(recipe.Immediate, nil), nil, endFor())

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, LoopValid, res.Nodes[0].Status)

	require.Len(t, res.Reasons, 2)
	for i, want := range []int{1, 2} {
		assert.Equal(t, errors.ErrCodeLoopActionUnreadable, res.Reasons[i].Code)
		assert.Equal(t, want, res.Reasons[i].StepIndex)
		assert.Equal(t, SeverityWarning, res.Reasons[i].Severity)
	}
}

func TestLoopParser_CustomActions(t *testing.T) {
	p := LoopParser{Actions: LoopActions{ForLoop: actShut, EndForLoop: actWait}}
	res := p.Parse(recipe.New(shutter(), wait(1)))

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, LoopValid, res.Nodes[0].Status)
}
