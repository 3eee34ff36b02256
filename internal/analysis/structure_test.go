package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

func TestStructureValidator_Validate(t *testing.T) {
	noAction := recipe.NewStep(recipe.Immediate, nil)
	nullAction := recipe.NewStep(recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnAction: nil})
	garbled := recipe.NewProperty(recipe.PropertyInt16, "12x")
	unreadable := recipe.NewStep(recipe.Immediate, map[recipe.ColumnID]*recipe.Property{recipe.ColumnAction: &garbled})

	tests := []struct {
		name      string
		recipe    recipe.Recipe
		wantCodes []errors.ErrorCode
		wantSteps []int
	}{
		{
			name:   "empty recipe short-circuits",
			recipe: recipe.New(),
		},
		{
			name:   "well formed",
			recipe: recipe.New(forLoop(2), wait(1), endFor()),
		},
		{
			name:      "null step",
			recipe:    recipe.New(shutter(), nil),
			wantCodes: []errors.ErrorCode{errors.ErrCodeStructNullStep},
			wantSteps: []int{1},
		},
		{
			name:      "every offending step is reported",
			recipe:    recipe.New(noAction, shutter(), nullAction, nil),
			wantCodes: []errors.ErrorCode{errors.ErrCodeStructNoAction, errors.ErrCodeStructNullAction, errors.ErrCodeStructNullStep},
			wantSteps: []int{0, 2, 3},
		},
		{
			name:   "unreadable action is left to the parser",
			recipe: recipe.New(unreadable),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := StructureValidator{}.Validate(tt.recipe)

			var codes []errors.ErrorCode
			var steps []int
			for _, r := range res.Reasons {
				assert.True(t, r.IsError())
				codes = append(codes, r.Code)
				steps = append(steps, r.StepIndex)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, tt.wantSteps, steps)
			assert.Equal(t, len(tt.wantCodes) > 0, res.HasErrors())
		})
	}
}
