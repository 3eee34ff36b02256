package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

var validateCmd = &cobra.Command{
	Use:   "validate [recipe]",
	Short: "Check a recipe and list its diagnostics",
	Long: `Validate a recipe without printing the timeline. Exits with code 3 when the
recipe is not valid for execution, so it can gate scripts and CI.`,
	Example: `  epistep validate growth.yaml
  epistep validate growth.yaml -o json`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRecipeFiles,
	RunE:              runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult is the output of the validate command
type ValidationResult struct {
	Recipe       string            `json:"recipe" yaml:"recipe"`
	Valid        bool              `json:"valid" yaml:"valid"`
	Steps        int               `json:"steps" yaml:"steps"`
	TotalSeconds float64           `json:"total_seconds" yaml:"total_seconds"`
	Flags        []string          `json:"flags,omitempty" yaml:"flags,omitempty"`
	Errors       int               `json:"errors" yaml:"errors"`
	Warnings     int               `json:"warnings" yaml:"warnings"`
	Reasons      []analysis.Reason `json:"reasons,omitempty" yaml:"reasons,omitempty"`

	total time.Duration
}

func newValidationResult(snap *analysis.Snapshot, path string) *ValidationResult {
	return &ValidationResult{
		Recipe:       path,
		Valid:        snap.IsValid,
		Steps:        snap.StepCount,
		TotalSeconds: snap.TotalDuration.Seconds(),
		Flags:        snap.Flags.Names(),
		Errors:       len(snap.Errors()),
		Warnings:     len(snap.Warnings()),
		Reasons:      snap.Reasons,
		total:        snap.TotalDuration,
	}
}

// RenderText prints a one-line verdict followed by the diagnostics
func (v *ValidationResult) RenderText(w io.Writer, color bool) error {
	ok, bad, warn := lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	if color {
		ok = ok.Foreground(lipgloss.Color("10")).Bold(true)
		bad = bad.Foreground(lipgloss.Color("9")).Bold(true)
		warn = warn.Foreground(lipgloss.Color("11"))
	}

	if v.Valid {
		fmt.Fprintf(w, "%s %s is valid (%d steps, %s)\n", ok.Render("✓"), v.Recipe, v.Steps, ux.FormatDuration(v.total))
	} else {
		fmt.Fprintf(w, "%s %s is not valid: %d errors, %d warnings\n", bad.Render("✗"), v.Recipe, v.Errors, v.Warnings)
	}

	for _, r := range v.Reasons {
		style := warn
		if r.IsError() {
			style = bad
		}
		if _, err := fmt.Fprintf(w, "  %s\n", style.Render(r.String())); err != nil {
			return err
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	path, err := resolveRecipePath(args)
	if err != nil {
		return err
	}

	snap, err := cc.AnalyzeFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	p, err := cc.Printer()
	if err != nil {
		return err
	}
	if err := p.Print(newValidationResult(snap, path)); err != nil {
		return err
	}

	if !snap.IsValid {
		return invalidRecipeError(snap)
	}
	return nil
}
