package ux

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/recipe"
	"github.com/felixgeelhaar/epistep/internal/schedule"
)

// StepLabeler names a step for display
type StepLabeler interface {
	StepLabel(step *recipe.Step) string
}

// SnapshotReport is the printable view of an analysis snapshot
type SnapshotReport struct {
	Source       string            `json:"source,omitempty" yaml:"source,omitempty"`
	RecipeID     string            `json:"recipe_id" yaml:"recipe_id"`
	Fingerprint  string            `json:"fingerprint" yaml:"fingerprint"`
	Steps        int               `json:"steps" yaml:"steps"`
	Valid        bool              `json:"valid" yaml:"valid"`
	Flags        []string          `json:"flags,omitempty" yaml:"flags,omitempty"`
	TotalSeconds float64           `json:"total_seconds" yaml:"total_seconds"`
	Loops        []LoopReport      `json:"loops,omitempty" yaml:"loops,omitempty"`
	Timeline     []StepReport      `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Reasons      []analysis.Reason `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// LoopReport describes one loop node
type LoopReport struct {
	Start                  int      `json:"start" yaml:"start"`
	End                    *int     `json:"end,omitempty" yaml:"end,omitempty"`
	Depth                  int      `json:"depth" yaml:"depth"`
	Status                 string   `json:"status" yaml:"status"`
	IterationsRaw          int      `json:"iterations_raw" yaml:"iterations_raw"`
	Iterations             int      `json:"iterations" yaml:"iterations"`
	SingleIterationSeconds *float64 `json:"single_iteration_seconds,omitempty" yaml:"single_iteration_seconds,omitempty"`
}

// StepReport places one step on the timeline
type StepReport struct {
	Index        int     `json:"index" yaml:"index"`
	Label        string  `json:"label" yaml:"label"`
	StartSeconds float64 `json:"start_seconds" yaml:"start_seconds"`
	Depth        int     `json:"depth" yaml:"depth"`
}

// NewSnapshotReport builds the view. Source is the file the recipe came from.
func NewSnapshotReport(snap *analysis.Snapshot, labels StepLabeler, source string) *SnapshotReport {
	rep := &SnapshotReport{
		Source:       source,
		Steps:        snap.StepCount,
		Valid:        snap.IsValid,
		Flags:        snap.Flags.Names(),
		TotalSeconds: snap.TotalDuration.Seconds(),
		Reasons:      snap.Reasons,
	}
	if fp, err := snap.Recipe.Fingerprint(); err == nil {
		rep.Fingerprint = fp
	}
	if id, err := snap.Recipe.ID(); err == nil {
		rep.RecipeID = id.String()
	}

	for _, n := range snap.LoopTree.Nodes() {
		lr := LoopReport{
			Start:         n.StartIndex,
			End:           n.EndIndex,
			Depth:         n.NestingDepth,
			Status:        n.Status.String(),
			IterationsRaw: n.IterationCountRaw,
			Iterations:    n.EffectiveIterationCount,
		}
		if n.SingleIterationDuration != nil {
			secs := n.SingleIterationDuration.Seconds()
			lr.SingleIterationSeconds = &secs
		}
		rep.Loops = append(rep.Loops, lr)
	}

	for i, step := range snap.Recipe.Steps() {
		start, _ := snap.StartTime(i)
		rep.Timeline = append(rep.Timeline, StepReport{
			Index:        i,
			Label:        labels.StepLabel(step),
			StartSeconds: start.Seconds(),
			Depth:        snap.LoopTree.Depth(i),
		})
	}
	return rep
}

type reportStyles struct {
	title, label, ok, bad, warn, muted lipgloss.Style
}

func newReportStyles(color bool) reportStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return reportStyles{plain, plain, plain, plain, plain, plain}
	}
	return reportStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// RenderText writes the report as an indented summary
func (r *SnapshotReport) RenderText(w io.Writer, color bool) error {
	st := newReportStyles(color)
	var b strings.Builder

	title := "Recipe " + shortID(r.RecipeID)
	if r.Source != "" {
		title += " (" + r.Source + ")"
	}
	b.WriteString(st.title.Render(title) + "\n")

	status := st.ok.Render("valid")
	if !r.Valid {
		status = st.bad.Render("invalid")
		if len(r.Flags) > 0 {
			status += " " + st.muted.Render("("+strings.Join(r.Flags, ", ")+")")
		}
	}
	fmt.Fprintf(&b, "  %s %d\n", st.label.Render("Steps:   "), r.Steps)
	fmt.Fprintf(&b, "  %s %s\n", st.label.Render("Duration:"), FormatDuration(secondsToDuration(r.TotalSeconds)))
	fmt.Fprintf(&b, "  %s %s\n", st.label.Render("Status:  "), status)

	if len(r.Loops) > 0 {
		b.WriteString("\n" + st.title.Render("Loops") + "\n")
		for _, l := range r.Loops {
			end := "?"
			if l.End != nil {
				end = fmt.Sprintf("%d", *l.End)
			}
			line := fmt.Sprintf("  [%d..%s] depth %d  x%d", l.Start, end, l.Depth, l.Iterations)
			if l.SingleIterationSeconds != nil {
				line += "  single " + FormatDuration(secondsToDuration(*l.SingleIterationSeconds))
			}
			statusStyle := st.ok
			if l.Status != analysis.LoopValid.String() {
				statusStyle = st.warn
			}
			b.WriteString(line + "  " + statusStyle.Render(l.Status) + "\n")
		}
	}

	if len(r.Timeline) > 0 {
		b.WriteString("\n" + st.title.Render("Timeline") + "\n")
		for _, s := range r.Timeline {
			fmt.Fprintf(&b, "  %4d  %-10s %s%s\n",
				s.Index,
				FormatDuration(secondsToDuration(s.StartSeconds)),
				strings.Repeat("  ", s.Depth),
				s.Label,
			)
		}
	}

	if len(r.Reasons) > 0 {
		b.WriteString("\n" + st.title.Render("Diagnostics") + "\n")
		for _, reason := range r.Reasons {
			style := st.warn
			if reason.IsError() {
				style = st.bad
			}
			b.WriteString("  " + style.Render(reason.String()) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ScheduleView prints an exported schedule
type ScheduleView schedule.Schedule

// NewScheduleView wraps a built schedule for printing
func NewScheduleView(s *schedule.Schedule) *ScheduleView {
	return (*ScheduleView)(s)
}

// RenderText writes one row per step, indented by loop depth
func (v *ScheduleView) RenderText(w io.Writer, color bool) error {
	st := newReportStyles(color)
	var b strings.Builder

	b.WriteString(st.title.Render("Schedule "+shortID(v.RecipeID)) + "\n")
	fmt.Fprintf(&b, "  %s %d\n", st.label.Render("Steps:   "), len(v.Steps))
	fmt.Fprintf(&b, "  %s %s\n\n", st.label.Render("Duration:"), FormatDuration(secondsToDuration(v.TotalSeconds)))

	for _, row := range v.Steps {
		line := fmt.Sprintf("  %4d  %-10s %s%s",
			row.Index,
			FormatDuration(secondsToDuration(row.StartSeconds)),
			strings.Repeat("  ", row.LoopDepth),
			row.Name,
		)
		if row.Iterations > 0 {
			line += st.muted.Render(fmt.Sprintf("  x%d", row.Iterations))
		}
		if row.LongLasting {
			line += st.muted.Render("  for " + FormatDuration(secondsToDuration(row.DurationSeconds)))
		}
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDuration prints durations at millisecond precision
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func secondsToDuration(s float64) time.Duration {
	return analysis.SecondsToDuration(s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
