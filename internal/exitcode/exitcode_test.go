package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"InvalidRecipe", InvalidRecipe, 3},
		{"SchemaError", SchemaError, 4},
		{"InputError", InputError, 5},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"invalid recipe", errors.NewRecipeInvalidError("step 0 is null"), InvalidRecipe},
		{"wrapped invalid recipe", fmt.Errorf("export: %w", errors.NewRecipeInvalidError()), InvalidRecipe},
		{"schema not found", errors.NewSchemaNotFoundError("s.yaml"), SchemaError},
		{"schema invalid", errors.NewSchemaInvalidError("duplicate column"), SchemaError},
		{"recipe not found", errors.NewRecipeNotFoundError("r.yaml"), InputError},
		{"recipe unmarshal", errors.NewRecipeUnmarshalError("r.csv", "csv", stderrors.New("bad row")), InputError},
		{"write failure", errors.NewFileWriteError("out.json", stderrors.New("read-only")), InputError},
		{"review aborted", errors.New(errors.ErrCodeRecipeReviewAborted, "review cancelled"), GeneralError},
		{"unknown command", stderrors.New(`unknown command "frobnicate" for "epistep"`), UsageError},
		{"unknown flag", stderrors.New("unknown flag: --fast"), UsageError},
		{"arg count", stderrors.New("accepts 1 arg(s), received 0"), UsageError},
		{"plain error", stderrors.New("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	for _, code := range []int{Success, GeneralError, UsageError, InvalidRecipe, SchemaError, InputError, Interrupted} {
		if desc := GetExitCodeDescription(code); desc == "" || desc == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Error("expected fallback description for unknown code")
	}
}
