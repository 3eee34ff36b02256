package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
	"github.com/felixgeelhaar/epistep/internal/schema"
)

// SchemaChecker verifies that the project schema file loads
type SchemaChecker struct {
	path string
}

// NewSchemaChecker checks the schema at path; an empty path means the built-in schema
func NewSchemaChecker(path string) *SchemaChecker {
	return &SchemaChecker{path: path}
}

// Name implements Checker
func (c *SchemaChecker) Name() string {
	return "schema"
}

// Check implements Checker
func (c *SchemaChecker) Check(ctx context.Context) *Result {
	if c.path == "" {
		s := schema.Default()
		return Healthy("using built-in schema").
			WithDetail("actions", len(s.Actions))
	}

	s, err := schema.Load(c.path)
	if err != nil {
		return failure(err).WithDetail("path", c.path)
	}
	return Healthy(fmt.Sprintf("%d actions, %d columns", len(s.Actions), len(s.Columns))).
		WithDetail("path", c.path)
}

// RecipeChecker loads and analyzes one recipe file
type RecipeChecker struct {
	path   string
	schema *schema.Schema
}

// NewRecipeChecker checks the recipe at path using s for column types and loop actions
func NewRecipeChecker(path string, s *schema.Schema) *RecipeChecker {
	return &RecipeChecker{path: path, schema: s}
}

// Name implements Checker
func (c *RecipeChecker) Name() string {
	return c.path
}

// Check implements Checker. Invalid recipes are unhealthy, valid recipes with
// warnings are degraded.
func (c *RecipeChecker) Check(ctx context.Context) *Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("check cancelled").WithDetail("error", err.Error())
	}

	r, err := recipe.NewFileRecipeRepository(c.schema).Load(c.path)
	if err != nil {
		return failure(err)
	}

	snap := analysis.NewAnalyzer(analysis.WithLoopActions(c.schema.LoopActions())).Analyze(r)
	errs, warns := len(snap.Errors()), len(snap.Warnings())

	var result *Result
	switch {
	case !snap.IsValid:
		result = Unhealthy(fmt.Sprintf("not valid: %d errors, %d warnings", errs, warns))
		if names := snap.Flags.Names(); len(names) > 0 {
			result.WithDetail("flags", names)
		}
	case warns > 0:
		result = Degraded(fmt.Sprintf("valid with %d warnings", warns))
	default:
		result = Healthy(fmt.Sprintf("valid, %s total", snap.TotalDuration))
	}

	if len(snap.Reasons) > 0 {
		codes := make([]string, len(snap.Reasons))
		for i, reason := range snap.Reasons {
			codes[i] = string(reason.Code)
		}
		result.WithDetail("codes", codes)
	}
	return result.
		WithDetail("steps", snap.StepCount).
		WithDetail("total_seconds", snap.TotalDuration.Seconds())
}

// failure reports err's first line, with its code when it has one
func failure(err error) *Result {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	result := Unhealthy(msg)
	if code := errors.CodeOf(err); code != "" {
		result.WithDetail("code", string(code))
	}
	return result
}
