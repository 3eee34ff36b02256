package analysis

import (
	"math"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// LoopParseResult holds the provisional loop nodes in emission order:
// valid and orphan nodes as they are met, then unclosed loops innermost first.
type LoopParseResult struct {
	Nodes   []LoopNode
	Reasons []Reason
}

// LoopParser recovers For/EndFor brackets from the flat step list
type LoopParser struct {
	Actions LoopActions
}

type openLoop struct {
	start      int
	iterations int
	depth      int
}

// Parse matches brackets in one forward pass. Malformed input never aborts the
// scan: unmatched brackets degrade to Incomplete or OrphanEnd nodes.
func (p LoopParser) Parse(r recipe.Recipe) LoopParseResult {
	var (
		res   LoopParseResult
		stack []openLoop
	)

	for i := 0; i < r.Len(); i++ {
		step := r.Step(i)
		if step == nil {
			continue
		}

		action, err := step.ActionID()
		if err != nil {
			res.Reasons = append(res.Reasons, warningAt(i, errors.ErrCodeLoopActionUnreadable, "cannot resolve action: %v", err))
			continue
		}

		switch action {
		case p.Actions.ForLoop:
			stack = append(stack, openLoop{
				start:      i,
				iterations: iterationCount(step),
				depth:      len(stack) + 1,
			})

		case p.Actions.EndForLoop:
			if len(stack) == 0 {
				end := i
				res.Nodes = append(res.Nodes, LoopNode{
					StartIndex:     i,
					EndIndex:       &end,
					NestingDepth:   0,
					BodyStartIndex: i,
					BodyEndIndex:   i,
					Status:         LoopOrphanEnd,
				})
				res.Reasons = append(res.Reasons, warningAt(i, errors.ErrCodeLoopOrphanEnd, "end of loop without a matching loop start"))
				continue
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			end := i
			res.Nodes = append(res.Nodes, LoopNode{
				StartIndex:        top.start,
				EndIndex:          &end,
				NestingDepth:      top.depth,
				IterationCountRaw: top.iterations,
				BodyStartIndex:    top.start,
				BodyEndIndex:      end,
				Status:            LoopValid,
			})
		}
	}

	last := r.Len() - 1
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Nodes = append(res.Nodes, LoopNode{
			StartIndex:        top.start,
			NestingDepth:      top.depth,
			IterationCountRaw: top.iterations,
			BodyStartIndex:    top.start,
			BodyEndIndex:      last,
			Status:            LoopIncomplete,
		})
		res.Reasons = append(res.Reasons, warningAt(top.start, errors.ErrCodeLoopUnclosed, "loop is never closed"))
	}

	return res
}

// iterationCount truncates the task value; absent or unreadable means one pass
func iterationCount(step *recipe.Step) int {
	f, err := step.Float(recipe.ColumnTask)
	if err != nil {
		return 1
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
