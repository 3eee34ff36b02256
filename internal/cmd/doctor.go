package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/errors"
	"github.com/felixgeelhaar/epistep/internal/health"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the schema and every recipe in the project",
	Long: `Run project diagnostics:

  • the active schema loads
  • every recipe in the working directory and .epistep/recipes/ analyzes cleanly

Recipes with warnings are reported as degraded. The command exits with code 3
when any recipe is not valid.`,
	Example: `  epistep doctor
  epistep doctor -o json --workers 4`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().Int("workers", 0, "recipes checked in parallel (default: number of CPUs)")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorReport is the output of the doctor command
type DoctorReport struct {
	Status health.Status  `json:"status" yaml:"status"`
	Checks []health.Entry `json:"checks" yaml:"checks"`
}

// RenderText prints one line per check and the overall status
func (r *DoctorReport) RenderText(w io.Writer, color bool) error {
	styles := map[health.Status]lipgloss.Style{
		health.StatusHealthy:   lipgloss.NewStyle(),
		health.StatusDegraded:  lipgloss.NewStyle(),
		health.StatusUnhealthy: lipgloss.NewStyle(),
	}
	if color {
		styles[health.StatusHealthy] = styles[health.StatusHealthy].Foreground(lipgloss.Color("10"))
		styles[health.StatusDegraded] = styles[health.StatusDegraded].Foreground(lipgloss.Color("11"))
		styles[health.StatusUnhealthy] = styles[health.StatusUnhealthy].Foreground(lipgloss.Color("9"))
	}
	icons := map[health.Status]string{
		health.StatusHealthy:   "✓",
		health.StatusDegraded:  "!",
		health.StatusUnhealthy: "✗",
	}

	for _, c := range r.Checks {
		fmt.Fprintf(w, "%s %-32s %s\n", styles[c.Status].Render(icons[c.Status]), c.Name, c.Message)
	}
	if len(r.Checks) == 1 {
		fmt.Fprintln(w, "  (no recipes found)")
	}
	_, err := fmt.Fprintf(w, "\nOverall: %s\n", styles[r.Status].Render(r.Status.String()))
	return err
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	workers, _ := cmd.Flags().GetInt("workers")

	manager := health.NewManager()
	if workers > 0 {
		manager.WithWorkers(workers)
	}

	schemaPath := cc.SchemaSource
	if schemaPath == builtinSchemaSource {
		schemaPath = ""
	}
	manager.AddChecker(health.NewSchemaChecker(schemaPath))

	recipes, err := ux.FindRecipes(".", ux.DiscoverPathDefaults().RecipesDir())
	if err != nil {
		return err
	}
	for _, path := range recipes {
		manager.AddChecker(health.NewRecipeChecker(path, cc.Schema))
	}

	entries := manager.Check(cmd.Context())
	report := &DoctorReport{Status: health.OverallStatus(entries), Checks: entries}
	cc.Logger.Info("doctor finished", "checks", len(entries), "status", report.Status.String())

	p, err := cc.Printer()
	if err != nil {
		return err
	}
	if err := p.Print(report); err != nil {
		return err
	}

	if report.Status == health.StatusUnhealthy {
		var failed []string
		for _, e := range entries {
			if e.Status == health.StatusUnhealthy {
				failed = append(failed, fmt.Sprintf("%s: %s", e.Name, e.Message))
			}
		}
		return errors.NewRecipeInvalidError(failed...)
	}
	return nil
}
