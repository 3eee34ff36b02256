package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/recipe"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a recipe between YAML and CSV",
	Long: `Convert rewrites a recipe in the format given by the output extension
(.yaml, .yml or .csv). Cells are copied as written, including unreadable
values and null steps, so an invalid recipe converts unchanged.`,
	Example: `  epistep convert growth.csv growth.yaml
  epistep convert growth.yaml export/growth.csv --force`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeRecipeFiles(cmd, nil, toComplete)
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("force", false, "overwrite an existing output file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	in, out := args[0], args[1]

	if _, err := recipe.FormatForPath(out); err != nil {
		return ux.FormatError(errors.NewRecipeFormatError(out), "convert")
	}
	if _, err := os.Stat(out); err == nil && !force {
		return FileExistsError(out)
	}

	repo := recipe.NewFileRecipeRepository(cc.Schema)
	r, err := repo.Load(in)
	if err != nil {
		return err
	}

	snap := cc.Analyzer().Analyze(r)
	cc.Logger.With("recipe", in).LogSnapshot(cmd.Context(), snap)

	if err := repo.Save(r, out); err != nil {
		return err
	}

	fmt.Fprintf(cc.Out, "✓ Converted %s → %s (%d steps)\n", in, out, r.Len())
	if !snap.IsValid {
		fmt.Fprintf(cc.Out, "! %s is not valid: %d errors, %d warnings\n", in, len(snap.Errors()), len(snap.Warnings()))
	}
	return nil
}
