package analysis

import (
	"math"
	"time"

	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// TimingResult is the expanded timeline of a recipe
type TimingResult struct {
	StepStartTimes []time.Duration
	TotalDuration  time.Duration
	UpdatedNodes   []LoopNode
}

// TimingCalculator computes step start offsets with loop expansion
type TimingCalculator struct{}

// Calculate walks the steps once. A step's start is recorded before its own
// duration is added. At a loop's closing step the body has been counted once,
// so only (iterations - 1) more copies of it are added.
func (TimingCalculator) Calculate(r recipe.Recipe, sem LoopSemanticsResult) TimingResult {
	closing := make(map[int]LoopNode)
	for _, n := range sem.Nodes {
		if n.Status == LoopValid && n.EndIndex != nil {
			closing[*n.EndIndex] = n
		}
	}

	starts := make([]time.Duration, r.Len())
	var accumulated time.Duration

	for i := 0; i < r.Len(); i++ {
		starts[i] = accumulated
		accumulated = saturatingAdd(accumulated, stepDuration(r.Step(i)))

		n, ok := closing[i]
		if !ok {
			continue
		}
		single := accumulated - starts[n.BodyStartIndex]
		if single < 0 {
			single = 0
		}
		if extra := n.EffectiveIterationCount - 1; extra > 0 {
			accumulated = saturatingAdd(accumulated, saturatingMul(single, extra))
		}
	}

	updated := cloneNodes(sem.Nodes)
	for i := range updated {
		n := &updated[i]
		if n.Status != LoopValid || n.EndIndex == nil {
			continue
		}
		single := starts[*n.EndIndex] - starts[n.BodyStartIndex]
		if single < 0 {
			single = 0
		}
		n.SingleIterationDuration = &single
	}

	return TimingResult{
		StepStartTimes: starts,
		TotalDuration:  accumulated,
		UpdatedNodes:   updated,
	}
}

// stepDuration is the time a step holds the timeline. Immediate steps and
// missing, unreadable or non-positive durations contribute nothing.
func stepDuration(step *recipe.Step) time.Duration {
	if step == nil || step.DeployDuration() != recipe.LongLasting {
		return 0
	}
	seconds, err := step.Float(recipe.ColumnStepDuration)
	if err != nil || seconds <= 0 {
		return 0
	}
	return SecondsToDuration(seconds)
}

// SecondsToDuration converts float seconds, rounding to the nanosecond and
// saturating at the largest representable duration.
func SecondsToDuration(seconds float64) time.Duration {
	ns := math.Round(seconds * float64(time.Second))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if ns <= math.MinInt64 {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

func saturatingAdd(a, b time.Duration) time.Duration {
	if b > 0 && a > math.MaxInt64-b {
		return time.Duration(math.MaxInt64)
	}
	return a + b
}

func saturatingMul(d time.Duration, n int) time.Duration {
	if d == 0 || n == 0 {
		return 0
	}
	if d > time.Duration(math.MaxInt64)/time.Duration(n) {
		return time.Duration(math.MaxInt64)
	}
	return d * time.Duration(n)
}
