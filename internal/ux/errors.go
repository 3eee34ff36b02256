package ux

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// ErrorWithSuggestion wraps an error with a recovery hint
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a hint to uncoded errors. Coded errors already carry
// their own suggestions and are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if errors.CodeOf(err) != "" {
		return err
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "permission denied"):
		return NewErrorWithSuggestion(err,
			"Check file permissions and ensure you have access to the recipe and output directories")
	case strings.Contains(errMsg, "no such file or directory"):
		return NewErrorWithSuggestion(err,
			"Check the path; recipes are .yaml, .yml or .csv files")
	case strings.Contains(errMsg, "unknown format"):
		return NewErrorWithSuggestion(err,
			"Use --output text, json or yaml")
	case strings.Contains(errMsg, "unknown log"):
		return NewErrorWithSuggestion(err,
			"Use --log-level debug|info|warn|error and --log-format text|json")
	}
	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
