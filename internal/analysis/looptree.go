package analysis

import "sort"

// LoopTree is a read-only index over the final loop nodes of one analysis
type LoopTree struct {
	nodes     []LoopNode
	byStart   map[int]int
	byEnd     map[int]int
	enclosing map[int][]int
}

// NewLoopTree indexes nodes by bracket position and by enclosed step.
// Only valid loops enclose steps; the range is inclusive of both brackets.
func NewLoopTree(nodes []LoopNode) *LoopTree {
	t := &LoopTree{
		nodes:     cloneNodes(nodes),
		byStart:   make(map[int]int, len(nodes)),
		byEnd:     make(map[int]int, len(nodes)),
		enclosing: make(map[int][]int),
	}

	var valid []int
	for i, n := range t.nodes {
		t.byStart[n.StartIndex] = i
		if n.EndIndex != nil {
			t.byEnd[*n.EndIndex] = i
		}
		if n.Status == LoopValid && n.EndIndex != nil {
			valid = append(valid, i)
		}
	}

	// Outer loops open first, so visiting by start index keeps lists outermost first.
	sort.Slice(valid, func(a, b int) bool {
		return t.nodes[valid[a]].StartIndex < t.nodes[valid[b]].StartIndex
	})
	for _, i := range valid {
		n := t.nodes[i]
		for step := n.StartIndex; step <= *n.EndIndex; step++ {
			t.enclosing[step] = append(t.enclosing[step], i)
		}
	}
	return t
}

// Len returns the number of nodes
func (t *LoopTree) Len() int {
	return len(t.nodes)
}

// Nodes returns a copy of every node in parse order
func (t *LoopTree) Nodes() []LoopNode {
	return cloneNodes(t.nodes)
}

// ByStartIndex returns the node whose opening bracket (or orphan end) is at step
func (t *LoopTree) ByStartIndex(step int) (LoopNode, bool) {
	i, ok := t.byStart[step]
	if !ok {
		return LoopNode{}, false
	}
	return t.nodes[i].clone(), true
}

// ByEndIndex returns the node whose closing bracket is at step
func (t *LoopTree) ByEndIndex(step int) (LoopNode, bool) {
	i, ok := t.byEnd[step]
	if !ok {
		return LoopNode{}, false
	}
	return t.nodes[i].clone(), true
}

// EnclosingLoops returns the valid loops containing step, outermost first
func (t *LoopTree) EnclosingLoops(step int) []LoopNode {
	idx := t.enclosing[step]
	if len(idx) == 0 {
		return nil
	}
	out := make([]LoopNode, len(idx))
	for j, i := range idx {
		out[j] = t.nodes[i].clone()
	}
	return out
}

// Depth returns how many valid loops contain step
func (t *LoopTree) Depth(step int) int {
	return len(t.enclosing[step])
}

// Incomplete returns the unclosed loops
func (t *LoopTree) Incomplete() []LoopNode {
	var out []LoopNode
	for _, n := range t.nodes {
		if n.Status == LoopIncomplete {
			out = append(out, n.clone())
		}
	}
	return out
}

// InsideUnclosedLoop reports whether step is at or after the start of an unclosed loop
func (t *LoopTree) InsideUnclosedLoop(step int) bool {
	for _, n := range t.nodes {
		if n.Status == LoopIncomplete && step >= n.StartIndex {
			return true
		}
	}
	return false
}
