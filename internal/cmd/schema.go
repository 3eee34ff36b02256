package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the active column and action schema",
	Long: `Show the schema used to type recipe columns and name actions. The schema is
read from --schema, then .epistep/schema.yaml, then the built-in default.

--dump prints the schema file itself, which is a starting point for a
project schema:

  epistep schema --dump > .epistep/schema.yaml`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().Bool("dump", false, "print the schema YAML")
	rootCmd.AddCommand(schemaCmd)
}

// SchemaView is the printable form of the active schema
type SchemaView struct {
	Source  string          `json:"source" yaml:"source"`
	Loop    schema.LoopIDs  `json:"loop" yaml:"loop"`
	Columns []schema.Column `json:"columns" yaml:"columns"`
	Actions []schema.Action `json:"actions" yaml:"actions"`
}

func newSchemaView(s *schema.Schema, source string) *SchemaView {
	return &SchemaView{
		Source:  source,
		Loop:    s.Loop,
		Columns: s.Columns,
		Actions: s.SortedActions(),
	}
}

// RenderText lists the columns and actions
func (v *SchemaView) RenderText(w io.Writer, color bool) error {
	header := lipgloss.NewStyle()
	if color {
		header = header.Bold(true).Foreground(lipgloss.Color("12"))
	}

	fmt.Fprintf(w, "%s %s\n\n", header.Render("Schema:"), v.Source)
	fmt.Fprintf(w, "%s\n  for_loop %d, end_for_loop %d\n\n", header.Render("Loop"), v.Loop.ForLoop, v.Loop.EndForLoop)

	fmt.Fprintln(w, header.Render("Columns"))
	for _, c := range v.Columns {
		fmt.Fprintf(w, "  %-16s %s\n", c.ID, c.Type)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, header.Render("Actions"))
	for _, a := range v.Actions {
		if _, err := fmt.Fprintf(w, "  %5d  %-18s %s\n", a.ID, a.Name, a.Deploy); err != nil {
			return err
		}
	}
	return nil
}

func runSchema(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	dump, _ := cmd.Flags().GetBool("dump")
	if dump {
		data := schema.DefaultYAML()
		if cc.SchemaSource != builtinSchemaSource {
			if data, err = os.ReadFile(cc.SchemaSource); err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
		}
		_, err := cc.Out.Write(data)
		return err
	}

	p, err := cc.Printer()
	if err != nil {
		return err
	}
	return p.Print(newSchemaView(cc.Schema, cc.SchemaSource))
}
