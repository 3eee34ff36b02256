package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error or diagnostic identifier
type ErrorCode string

// Error categories
const (
	// Recipe errors (RECIPE-001 to RECIPE-099)
	ErrCodeRecipeNotFound      ErrorCode = "RECIPE-001"
	ErrCodeRecipeUnmarshal     ErrorCode = "RECIPE-002"
	ErrCodeRecipeMarshal       ErrorCode = "RECIPE-003"
	ErrCodeRecipeFormat        ErrorCode = "RECIPE-004"
	ErrCodeRecipeStepIndex     ErrorCode = "RECIPE-005"
	ErrCodeRecipeInvalid       ErrorCode = "RECIPE-010"
	ErrCodeRecipeEmpty         ErrorCode = "RECIPE-011"
	ErrCodeRecipeReviewAborted ErrorCode = "RECIPE-012"

	// Structure diagnostics (STRUCT-001 to STRUCT-099)
	ErrCodeStructNullStep   ErrorCode = "STRUCT-001"
	ErrCodeStructNoAction   ErrorCode = "STRUCT-002"
	ErrCodeStructNullAction ErrorCode = "STRUCT-003"

	// Loop diagnostics (LOOP-001 to LOOP-099)
	ErrCodeLoopOrphanEnd        ErrorCode = "LOOP-001"
	ErrCodeLoopUnclosed         ErrorCode = "LOOP-002"
	ErrCodeLoopDepthExceeded    ErrorCode = "LOOP-003"
	ErrCodeLoopActionUnreadable ErrorCode = "LOOP-004"

	// Schema errors (SCHEMA-001 to SCHEMA-099)
	ErrCodeSchemaNotFound  ErrorCode = "SCHEMA-001"
	ErrCodeSchemaUnmarshal ErrorCode = "SCHEMA-002"
	ErrCodeSchemaInvalid   ErrorCode = "SCHEMA-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// Category returns the prefix of the code (RECIPE, LOOP, SCHEMA, ...)
func (c ErrorCode) Category() string {
	s := string(c)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}

// RecipeError represents an enhanced error with code, suggestions, and documentation
type RecipeError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *RecipeError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RecipeError) Unwrap() error {
	return e.Cause
}

// New creates a new RecipeError
func New(code ErrorCode, message string) *RecipeError {
	return &RecipeError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new RecipeError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *RecipeError {
	return &RecipeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *RecipeError) WithSuggestion(suggestion string) *RecipeError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *RecipeError) WithSuggestions(suggestions ...string) *RecipeError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *RecipeError) WithDocs(url string) *RecipeError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first RecipeError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var re *RecipeError
	if stderrors.As(err, &re) {
		return re.Code
	}
	return ""
}

// Common error constructors for frequently used errors

// NewRecipeNotFoundError creates a recipe file not found error
func NewRecipeNotFoundError(path string) *RecipeError {
	return New(ErrCodeRecipeNotFound, fmt.Sprintf("recipe file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Recipes are read from .yaml, .yml or .csv files")
}

// NewRecipeUnmarshalError creates a recipe parse error
func NewRecipeUnmarshalError(path string, format string, cause error) *RecipeError {
	return Wrap(ErrCodeRecipeUnmarshal, fmt.Sprintf("failed to parse %s recipe: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// NewRecipeFormatError creates an unsupported recipe format error
func NewRecipeFormatError(path string) *RecipeError {
	return New(ErrCodeRecipeFormat, fmt.Sprintf("unsupported recipe format: %s", path)).
		WithSuggestion("Use a .yaml, .yml or .csv extension")
}

// NewStepIndexError creates an out-of-range step index error
func NewStepIndexError(index, count int) *RecipeError {
	return New(ErrCodeRecipeStepIndex, fmt.Sprintf("step index %d out of range [0, %d]", index, count))
}

// NewRecipeInvalidError creates an error for a recipe that failed analysis
func NewRecipeInvalidError(details ...string) *RecipeError {
	return New(ErrCodeRecipeInvalid, "recipe is not valid for execution").
		WithSuggestions(details...).
		WithSuggestion("Run 'epistep validate <recipe>' to see all diagnostics")
}

// NewSchemaNotFoundError creates a schema file not found error
func NewSchemaNotFoundError(path string) *RecipeError {
	return New(ErrCodeSchemaNotFound, fmt.Sprintf("schema file not found: %s", path)).
		WithSuggestion("Omit --schema to use the built-in schema").
		WithSuggestion("Run 'epistep schema --dump > .epistep/schema.yaml' to start from the default")
}

// NewSchemaUnmarshalError creates a schema parse error
func NewSchemaUnmarshalError(path string, cause error) *RecipeError {
	return Wrap(ErrCodeSchemaUnmarshal, fmt.Sprintf("failed to parse schema: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the schema file")
}

// NewSchemaInvalidError creates a schema validation error
func NewSchemaInvalidError(details string) *RecipeError {
	return New(ErrCodeSchemaInvalid, fmt.Sprintf("invalid schema: %s", details)).
		WithSuggestion("Compare with 'epistep schema --dump'")
}

// NewFileWriteError creates a file write error
func NewFileWriteError(path string, cause error) *RecipeError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Verify the directory exists and you have write permissions")
}
