package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// InvalidRecipe indicates the recipe failed analysis
	InvalidRecipe = 3

	// SchemaError indicates the column/action schema could not be used
	SchemaError = 4

	// InputError indicates a recipe file could not be read, parsed or written
	InputError = 5

	// Interrupted indicates the command was cancelled by SIGINT or SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps coded errors by code, then falls back to cobra's usage messages
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch code := errors.CodeOf(err); {
	case code == errors.ErrCodeRecipeInvalid:
		return InvalidRecipe
	case code == errors.ErrCodeRecipeReviewAborted:
		return GeneralError
	case code.Category() == "SCHEMA":
		return SchemaError
	case code.Category() == "RECIPE", code.Category() == "IO":
		return InputError
	}

	errMsg := strings.ToLower(err.Error())
	usage := []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"invalid argument",
		"required flag",
		"accepts ",
		"requires at least",
		"flag needs an argument",
	}
	for _, s := range usage {
		if strings.Contains(errMsg, s) {
			return UsageError
		}
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case InvalidRecipe:
		return "Recipe failed analysis"
	case SchemaError:
		return "Schema error"
	case InputError:
		return "Recipe input/output error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
