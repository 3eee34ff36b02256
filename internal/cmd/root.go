package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/ux"
)

var rootCmd = &cobra.Command{
	Use:   "epistep",
	Short: "Recipe analysis for MBE growth sequencers",
	Long: `epistep checks epitaxy recipes before they are sent to the sequencer PLC.
It validates the step list, recovers the loop structure from ForLoop/EndForLoop
markers, and computes the timeline with loop iterations expanded. Only recipes
that pass analysis can be approved or exported as a schedule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context that commands can observe
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("schema", "", "column/action schema file (default: .epistep/schema.yaml, else built-in)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ux.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("schema", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
