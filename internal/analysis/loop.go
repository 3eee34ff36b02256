package analysis

import "time"

// MaxDepth is the deepest loop nesting the sequencer accepts
const MaxDepth = 3

// LoopActions are the action ids that open and close a loop bracket
type LoopActions struct {
	ForLoop    int16
	EndForLoop int16
}

// DefaultLoopActions matches the built-in schema
var DefaultLoopActions = LoopActions{ForLoop: 120, EndForLoop: 130}

// LoopStatus is assigned by the parser and never changes afterwards
type LoopStatus int

const (
	// LoopValid is a matched For/EndFor pair
	LoopValid LoopStatus = iota
	// LoopIncomplete is a For with no EndFor before the end of the recipe
	LoopIncomplete
	// LoopOrphanEnd is an EndFor with no open For
	LoopOrphanEnd
)

// String returns the status name
func (s LoopStatus) String() string {
	switch s {
	case LoopValid:
		return "valid"
	case LoopIncomplete:
		return "incomplete"
	case LoopOrphanEnd:
		return "orphan_end"
	default:
		return "unknown"
	}
}

// MarshalText lets formatters print the status by name
func (s LoopStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LoopNode is one recovered loop bracket.
// Status == LoopValid implies EndIndex != nil and *EndIndex >= StartIndex.
type LoopNode struct {
	StartIndex              int            `json:"start_index" yaml:"start_index"`
	EndIndex                *int           `json:"end_index" yaml:"end_index"`
	NestingDepth            int            `json:"nesting_depth" yaml:"nesting_depth"`
	IterationCountRaw       int            `json:"iteration_count_raw" yaml:"iteration_count_raw"`
	EffectiveIterationCount int            `json:"effective_iteration_count" yaml:"effective_iteration_count"`
	BodyStartIndex          int            `json:"body_start_index" yaml:"body_start_index"`
	BodyEndIndex            int            `json:"body_end_index" yaml:"body_end_index"`
	SingleIterationDuration *time.Duration `json:"single_iteration_duration,omitempty" yaml:"single_iteration_duration,omitempty"`
	Status                  LoopStatus     `json:"status" yaml:"status"`
}

// Contains reports whether step lies within a closed loop's brackets (inclusive)
func (n LoopNode) Contains(step int) bool {
	return n.Status == LoopValid && n.EndIndex != nil && step >= n.StartIndex && step <= *n.EndIndex
}

// clone copies the node including its optional fields
func (n LoopNode) clone() LoopNode {
	if n.EndIndex != nil {
		end := *n.EndIndex
		n.EndIndex = &end
	}
	if n.SingleIterationDuration != nil {
		d := *n.SingleIterationDuration
		n.SingleIterationDuration = &d
	}
	return n
}

func cloneNodes(nodes []LoopNode) []LoopNode {
	out := make([]LoopNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}
