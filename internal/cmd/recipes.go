package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/tui"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

// resolveRecipePath returns the recipe argument, or discovers one in the
// working directory and the project recipes directory. Several candidates
// are offered in a picker when a terminal is attached.
func resolveRecipePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	dirs := []string{".", ux.DiscoverPathDefaults().RecipesDir()}
	found, err := ux.FindRecipes(dirs...)
	if err != nil {
		return "", err
	}

	switch {
	case len(found) == 0:
		return "", NoRecipeError(dirs...)
	case len(found) == 1:
		return found[0], nil
	case !tui.ShouldPrompt():
		return "", AmbiguousRecipeError(found)
	}
	return tui.PromptForRecipe(found)
}

// completeRecipeFiles restricts shell completion to recipe extensions
func completeRecipeFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"yaml", "yml", "csv"}, cobra.ShellCompDirectiveFilterFileExt
}
