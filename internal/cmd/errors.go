package cmd

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/errors"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// NoRecipeError is returned when no recipe argument was given and none was found
func NoRecipeError(dirs ...string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("No recipe given and none found in %s", strings.Join(dirs, ", ")),
		nil,
		"Pass the recipe file: epistep analyze <recipe.yaml>",
		"Keep project recipes in .epistep/recipes/",
	)
}

// AmbiguousRecipeError is returned when several recipes were found and prompting is not possible
func AmbiguousRecipeError(paths []string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("No recipe given and %d candidates found", len(paths)),
		nil,
		"Pass one of: "+strings.Join(paths, ", "),
	)
}

// NotInteractiveError is returned by commands that need a terminal
func NotInteractiveError(command string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("%s needs an interactive terminal", command),
		nil,
		"Use 'epistep validate <recipe>' in scripts and CI",
		"Use 'epistep export <recipe>' to write the schedule without review",
	)
}

// FileExistsError is returned when a command would overwrite a file without --force
func FileExistsError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("File already exists: %s", path),
		nil,
		"Overwrite it: --force",
		"Write somewhere else: --out <path>",
	)
}

// invalidRecipeError lists the snapshot's diagnostics as suggestions
func invalidRecipeError(snap *analysis.Snapshot) error {
	details := make([]string, 0, len(snap.Reasons))
	for _, r := range snap.Reasons {
		details = append(details, r.String())
	}
	return errors.NewRecipeInvalidError(details...)
}
