package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/ux"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [recipe]",
	Short: "Analyze a recipe and print its loop structure and timeline",
	Long: `Analyze a YAML or CSV recipe and print the analysis snapshot: loops with
their nesting depth and iteration counts, the start offset of every step,
the total duration with loop iterations expanded, and all diagnostics.

Without an argument the recipe is looked up in the working directory and
in .epistep/recipes/.`,
	Example: `  epistep analyze growth.yaml
  epistep analyze growth.csv --output json
  epistep analyze growth.yaml --strict`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRecipeFiles,
	RunE:              runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("strict", false, "exit with an error when the recipe is not valid")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
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
	if err := p.Print(ux.NewSnapshotReport(snap, cc.Schema, path)); err != nil {
		return err
	}

	if strict && !snap.IsValid {
		return invalidRecipeError(snap)
	}
	return nil
}
