package ux

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{"nil", nil, ""},
		{"permission", stderrors.New("open out.json: permission denied"), "file permissions"},
		{"missing file", stderrors.New("open x: no such file or directory"), ".yaml, .yml or .csv"},
		{"bad output", stderrors.New("unknown format: xml (supported: text, json, yaml)"), "--output"},
		{"bad log flag", stderrors.New(`unknown log level "loud"`), "--log-level"},
		{"unrecognized", stderrors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("EnhanceError(nil) = %v", got)
				}
				return
			}

			var ews *ErrorWithSuggestion
			hasSuggestion := stderrors.As(got, &ews)
			if tt.wantSuggestion == "" {
				if hasSuggestion {
					t.Errorf("unexpected suggestion: %v", got)
				}
				return
			}
			if !hasSuggestion || !strings.Contains(ews.Suggestion, tt.wantSuggestion) {
				t.Errorf("EnhanceError() = %v, want suggestion containing %q", got, tt.wantSuggestion)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("enhanced error should unwrap to the original")
			}
		})
	}
}

func TestEnhanceError_CodedErrorsUnchanged(t *testing.T) {
	err := errors.NewRecipeNotFoundError("missing.yaml")
	if got := EnhanceError(err); got != error(err) {
		t.Errorf("coded error was rewrapped: %v", got)
	}
}

func TestFormatError(t *testing.T) {
	err := FormatError(stderrors.New("boom"), "load recipe")
	if err == nil || err.Error() != "load recipe: boom" {
		t.Errorf("FormatError() = %v", err)
	}
	if FormatError(nil, "ctx") != nil {
		t.Error("FormatError(nil) should be nil")
	}
}
