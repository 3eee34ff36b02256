package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/log"
	"github.com/felixgeelhaar/epistep/internal/recipe"
	"github.com/felixgeelhaar/epistep/internal/schema"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

// builtinSchemaSource names the embedded schema in output and logs
const builtinSchemaSource = "built-in"

// CommandContext holds the resolved persistent flags of one command invocation
// together with the schema and logger they select.
type CommandContext struct {
	// Output control
	Format  string
	NoColor bool

	// Logging
	LogLevel  string
	LogFormat string

	// Schema is the active column/action schema; SchemaSource is its file
	// path or "built-in".
	Schema       *schema.Schema
	SchemaSource string

	Logger *log.Logger
	Out    io.Writer
}

// NewCommandContext extracts the persistent flags from cmd, configures the
// default logger and loads the schema.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}

	schemaFlag, err := cmd.Flags().GetString("schema")
	if err != nil {
		return nil, err
	}

	cfg, err := log.ParseConfig(logLevel, logFormat)
	if err != nil {
		return nil, err
	}
	cfg.Output = cmd.ErrOrStderr()
	cfg.Component = "cli"
	logger := log.New(cfg)
	log.SetDefaultLogger(logger)

	s, source, err := loadSchema(schemaFlag)
	if err != nil {
		return nil, err
	}
	logger.Debug("schema loaded", "source", source, "actions", len(s.Actions), "columns", len(s.Columns))

	return &CommandContext{
		Format:       format,
		NoColor:      noColor,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		Schema:       s,
		SchemaSource: source,
		Logger:       logger,
		Out:          cmd.OutOrStdout(),
	}, nil
}

// loadSchema resolves the schema flag against the discovered .epistep
// directory, falling back to the embedded schema.
func loadSchema(flag string) (*schema.Schema, string, error) {
	path, ok := ux.DiscoverPathDefaults().ResolveSchemaFile(flag)
	if !ok {
		return schema.Default(), builtinSchemaSource, nil
	}
	s, err := schema.Load(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

// Printer returns the printer selected by --output
func (c *CommandContext) Printer() (*ux.Printer, error) {
	return ux.NewPrinter(c.Format, ux.PrinterOptions{
		Writer:  c.Out,
		NoColor: c.NoColor,
	})
}

// Analyzer returns an analyzer using the active schema's loop actions
func (c *CommandContext) Analyzer() *analysis.Analyzer {
	return analysis.NewAnalyzer(analysis.WithLoopActions(c.Schema.LoopActions()))
}

// AnalyzeFile loads the recipe at path and analyzes it, logging the summary
func (c *CommandContext) AnalyzeFile(ctx context.Context, path string) (*analysis.Snapshot, error) {
	r, err := recipe.NewFileRecipeRepository(c.Schema).Load(path)
	if err != nil {
		return nil, err
	}

	snap := c.Analyzer().Analyze(r)
	c.Logger.With("recipe", path).LogSnapshot(ctx, snap)
	return snap, nil
}
