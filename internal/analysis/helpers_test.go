package analysis

import (
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

const (
	actWait int16 = 10
	actShut int16 = 20
	actFor  int16 = 120
	actEnd  int16 = 130
)

func step(action int16, deploy recipe.DeployDuration, extra map[recipe.ColumnID]*recipe.Property) *recipe.Step {
	props := map[recipe.ColumnID]*recipe.Property{}
	a := recipe.Int16Property(action)
	props[recipe.ColumnAction] = &a
	for k, v := range extra {
		props[k] = v
	}
	return recipe.NewStep(deploy, props)
}

func forLoop(task float64) *recipe.Step {
	t := recipe.FloatProperty(task)
	return step(actFor, recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnTask: &t})
}

func forLoopRaw(task string) *recipe.Step {
	t := recipe.NewProperty(recipe.PropertyFloat, task)
	return step(actFor, recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnTask: &t})
}

func endFor() *recipe.Step {
	return step(actEnd, recipe.Immediate, nil)
}

func wait(seconds float64) *recipe.Step {
	d := recipe.FloatProperty(seconds)
	return step(actWait, recipe.LongLasting, map[recipe.ColumnID]*recipe.Property{recipe.ColumnStepDuration: &d})
}

func shutter() *recipe.Step {
	return step(actShut, recipe.Immediate, nil)
}

func intPtr(i int) *int {
	return &i
}
