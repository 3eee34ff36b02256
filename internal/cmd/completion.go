package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(epistep completion bash)

  # To load completions for each session, execute once:
  $ epistep completion bash > /etc/bash_completion.d/epistep

Zsh:
  $ epistep completion zsh > "${fpath[1]}/_epistep"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ epistep completion fish > ~/.config/fish/completions/epistep.fish

PowerShell:
  PS> epistep completion powershell | Out-String | Invoke-Expression

Recipe arguments complete to .yaml, .yml and .csv files.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	}
	return nil
}
