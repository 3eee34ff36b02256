package analysis

import (
	"github.com/felixgeelhaar/epistep/internal/errors"
)

// LoopSemanticsResult is the parse result annotated with effective counts
type LoopSemanticsResult struct {
	Nodes                    []LoopNode
	Reasons                  []Reason
	LoopIntegrityCompromised bool
	MaxDepthExceeded         bool
}

// LoopSemanticEvaluator normalizes iteration counts and flags integrity and depth problems.
// It never removes or reorders nodes.
type LoopSemanticEvaluator struct{}

// Evaluate annotates every node. Non-positive counts run the body once.
func (LoopSemanticEvaluator) Evaluate(parsed LoopParseResult) LoopSemanticsResult {
	res := LoopSemanticsResult{Nodes: cloneNodes(parsed.Nodes)}

	for i := range res.Nodes {
		n := &res.Nodes[i]

		n.EffectiveIterationCount = n.IterationCountRaw
		if n.EffectiveIterationCount <= 0 {
			n.EffectiveIterationCount = 1
		}

		if n.Status == LoopIncomplete || n.Status == LoopOrphanEnd {
			res.LoopIntegrityCompromised = true
		}

		if n.NestingDepth > MaxDepth {
			res.MaxDepthExceeded = true
			res.Reasons = append(res.Reasons, warningAt(n.StartIndex, errors.ErrCodeLoopDepthExceeded,
				"loop nesting depth %d exceeds the maximum of %d", n.NestingDepth, MaxDepth))
		}
	}
	return res
}
