package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/tui"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

var reviewCmd = &cobra.Command{
	Use:   "review [recipe]",
	Short: "Review a recipe interactively before sending it",
	Long: `Open the analyzed recipe in a terminal UI. Step through the timeline, inspect
loops and diagnostics, then approve or reject it. Approval is only possible
when the recipe is valid. With --export an approved recipe is written as a
schedule.`,
	Example: `  epistep review growth.yaml
  epistep review growth.yaml --export --out next.schedule.json`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRecipeFiles,
	RunE:              runReview,
}

func init() {
	reviewCmd.Flags().Bool("export", false, "export the schedule after approval")
	reviewCmd.Flags().String("out", "", "schedule file for --export (default <recipe>.schedule.json)")
	reviewCmd.Flags().Bool("force", false, "overwrite an existing schedule file")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	export, _ := cmd.Flags().GetBool("export")
	out, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	if !tui.ShouldPrompt() {
		return NotInteractiveError("review")
	}

	path, err := resolveRecipePath(args)
	if err != nil {
		return err
	}

	snap, err := cc.AnalyzeFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	result, err := tui.RunRecipeReview(snap, cc.Schema)
	if err != nil {
		return err
	}

	if !result.Approved {
		cc.Logger.Info("recipe rejected", "recipe", path, "reason", result.Reason)
		reason := result.Reason
		if reason == "" {
			reason = "no reason given"
		}
		return errors.New(errors.ErrCodeRecipeReviewAborted, fmt.Sprintf("recipe rejected: %s", reason))
	}

	cc.Logger.Info("recipe approved", "recipe", path)
	fmt.Fprintln(cc.Out, "✓ Recipe approved")

	if !export {
		return nil
	}
	if out == "" {
		out = ux.ScheduleFile(path)
	}
	return exportSchedule(cc, snap, out, force)
}
