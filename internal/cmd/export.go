package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/schedule"
	"github.com/felixgeelhaar/epistep/internal/tui"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

var exportCmd = &cobra.Command{
	Use:   "export [recipe]",
	Short: "Write the sequencer schedule for a valid recipe",
	Long: `Export builds the flat schedule the sequencer executes: one row per step with
its action name, start offset, duration, loop depth and loop bounds. Recipes
that fail analysis are refused.

The schedule is written next to the recipe as <name>.schedule.json unless
--out is given. Use --out - to print it instead.`,
	Example: `  epistep export growth.yaml
  epistep export growth.yaml --out /srv/plc/next.json --force
  epistep export growth.yaml --out - -o yaml`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRecipeFiles,
	RunE:              runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "schedule file (default <recipe>.schedule.json, - for stdout)")
	exportCmd.Flags().Bool("force", false, "overwrite an existing schedule file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	path, err := resolveRecipePath(args)
	if err != nil {
		return err
	}

	snap, err := cc.AnalyzeFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	if out == "" {
		out = ux.ScheduleFile(path)
	}
	return exportSchedule(cc, snap, out, force)
}

// exportSchedule builds the schedule and writes it to out, asking before
// overwriting when a terminal is attached.
func exportSchedule(cc *CommandContext, snap *analysis.Snapshot, out string, force bool) error {
	sched, err := schedule.Build(snap, cc.Schema)
	if err != nil {
		return err
	}

	if out == "-" {
		p, err := cc.Printer()
		if err != nil {
			return err
		}
		return p.Print(ux.NewScheduleView(sched))
	}

	if _, err := os.Stat(out); err == nil && !force {
		if !tui.ShouldPrompt() {
			return FileExistsError(out)
		}
		overwrite, err := tui.PromptForConfirmation(fmt.Sprintf("Overwrite %s?", out), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(cc.Out, "Export cancelled")
			return nil
		}
	}

	if err := sched.Save(out); err != nil {
		return err
	}
	cc.Logger.Info("schedule exported", "path", out, "recipe_id", sched.RecipeID, "steps", len(sched.Steps))

	fmt.Fprintf(cc.Out, "✓ Schedule written to %s (%d steps, %s)\n",
		out, len(sched.Steps), ux.FormatDuration(snap.TotalDuration))
	return nil
}
