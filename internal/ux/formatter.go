package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a command result is written
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Formats lists the accepted --output values
var Formats = []string{string(OutputText), string(OutputJSON), string(OutputYAML)}

// ParseOutputFormat resolves an --output value; empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON, OutputYAML:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown format: %s (supported: text, json, yaml)", s)
	}
}

// View is a command result: snapshot reports, schedules, validation verdicts,
// doctor reports. Text output is laid out by the view itself; json and yaml
// encode its exported fields.
type View interface {
	RenderText(w io.Writer, color bool) error
}

// PrinterOptions configures a Printer
type PrinterOptions struct {
	// Writer defaults to os.Stdout
	Writer  io.Writer
	NoColor bool
	// Compact drops indentation from json and yaml
	Compact bool
}

// Printer writes views in one output format
type Printer struct {
	format OutputFormat
	opts   PrinterOptions
}

// NewPrinter creates a printer for an --output value
func NewPrinter(format string, opts PrinterOptions) (*Printer, error) {
	f, err := ParseOutputFormat(format)
	if err != nil {
		return nil, err
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &Printer{format: f, opts: opts}, nil
}

// Print writes one view
func (p *Printer) Print(v View) error {
	switch p.format {
	case OutputJSON:
		enc := json.NewEncoder(p.opts.Writer)
		if !p.opts.Compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(p.opts.Writer)
		if !p.opts.Compact {
			enc.SetIndent(2)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return v.RenderText(p.opts.Writer, !p.opts.NoColor)
	}
}
