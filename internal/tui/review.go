package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/ux"
)

// ReviewResult holds the outcome of a recipe review session
type ReviewResult struct {
	Approved bool
	Reason   string
}

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
	viewDiagnostics
)

// reviewModel is the BubbleTea model for recipe review
type reviewModel struct {
	snap           *analysis.Snapshot
	labels         ux.StepLabeler
	keys           reviewKeyMap
	styles         Styles
	cursor         int
	offset         int
	mode           viewMode
	notice         string
	editingReason  bool
	rejectionInput string
	result         *ReviewResult
	width          int
	height         int
}

func newReviewModel(snap *analysis.Snapshot, labels ux.StepLabeler) reviewModel {
	return reviewModel{
		snap:   snap,
		labels: labels,
		keys:   defaultReviewKeys(),
		styles: DefaultStyles(),
	}
}

// Init initializes the model
func (m reviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.editingReason {
			return m.updateReason(msg)
		}
		m.notice = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.result == nil {
				m.result = &ReviewResult{Approved: false, Reason: "Review cancelled"}
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.mode == viewList && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.mode == viewList && m.cursor < m.snap.StepCount-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Top):
			if m.mode == viewList {
				m.cursor = 0
			}

		case key.Matches(msg, m.keys.Bottom):
			if m.mode == viewList && m.snap.StepCount > 0 {
				m.cursor = m.snap.StepCount - 1
			}

		case key.Matches(msg, m.keys.Open):
			if m.mode == viewList && m.snap.StepCount > 0 {
				m.mode = viewDetail
			}

		case key.Matches(msg, m.keys.Back):
			m.mode = viewList

		case key.Matches(msg, m.keys.Diagnostics):
			if m.mode == viewDiagnostics {
				m.mode = viewList
			} else {
				m.mode = viewDiagnostics
			}

		case key.Matches(msg, m.keys.Approve):
			if !m.snap.IsValid {
				m.notice = fmt.Sprintf("Approval disabled: %d errors, %d warnings", len(m.snap.Errors()), len(m.snap.Warnings()))
				return m, nil
			}
			m.result = &ReviewResult{Approved: true}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reject):
			m.editingReason = true
		}
		m.scroll()
	}

	return m, nil
}

func (m reviewModel) updateReason(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editingReason = false
		m.result = &ReviewResult{Approved: false, Reason: strings.TrimSpace(m.rejectionInput)}
		return m, tea.Quit
	case tea.KeyEsc:
		m.editingReason = false
		m.rejectionInput = ""
	case tea.KeyCtrlC:
		m.result = &ReviewResult{Approved: false, Reason: "Review cancelled"}
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.rejectionInput); len(r) > 0 {
			m.rejectionInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.rejectionInput += " "
	case tea.KeyRunes:
		m.rejectionInput += string(msg.Runes)
	}
	return m, nil
}

// visibleRows is the number of list rows that fit on screen
func (m reviewModel) visibleRows() int {
	if m.height <= 0 {
		return m.snap.StepCount
	}
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	return rows
}

// scroll keeps the cursor inside the visible window
func (m *reviewModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the current state
func (m reviewModel) View() string {
	st := m.styles
	if m.result != nil {
		if m.result.Approved {
			return st.Success.Render("\n✓ Recipe Approved\n\n")
		}
		reason := m.result.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		return st.Error.Render(fmt.Sprintf("\n✗ Recipe Rejected\n  Reason: %s\n\n", reason))
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Recipe Review"))
	b.WriteString("\n\n")
	b.WriteString(st.Header.Render(m.summary()))
	b.WriteString("\n\n")

	switch m.mode {
	case viewDetail:
		m.renderDetail(&b)
	case viewDiagnostics:
		m.renderDiagnostics(&b)
	default:
		m.renderList(&b)
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("  " + st.Warning.Render(m.notice) + "\n")
	}

	if m.editingReason {
		b.WriteString(st.Error.Render("✗ Rejection Reason:"))
		b.WriteString("\n  ")
		b.WriteString(m.rejectionInput)
		b.WriteString("_\n")
		b.WriteString(st.Help.Render("enter: submit | esc: cancel"))
		return b.String()
	}

	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Diagnostics}
	if m.mode != viewList {
		bindings = []key.Binding{m.keys.Back, m.keys.Diagnostics}
	}
	if m.snap.IsValid {
		bindings = append(bindings, m.keys.Approve)
	}
	bindings = append(bindings, m.keys.Reject, m.keys.Quit)
	b.WriteString(st.helpLine(bindings...))

	return b.String()
}

func (m reviewModel) summary() string {
	status := "valid"
	if !m.snap.IsValid {
		status = "INVALID"
		if names := m.snap.Flags.Names(); len(names) > 0 {
			status += " (" + strings.Join(names, ", ") + ")"
		}
	}
	return fmt.Sprintf("Steps: %d | Loops: %d | Total: %s | %s",
		m.snap.StepCount,
		m.snap.LoopTree.Len(),
		ux.FormatDuration(m.snap.TotalDuration),
		status,
	)
}

func (m reviewModel) renderList(b *strings.Builder) {
	st := m.styles
	if m.snap.StepCount == 0 {
		b.WriteString(st.Item.Render(st.Muted.Render("(no steps)")))
		b.WriteString("\n")
		return
	}

	end := m.offset + m.visibleRows()
	if end > m.snap.StepCount {
		end = m.snap.StepCount
	}
	for i := m.offset; i < end; i++ {
		style := st.Item
		cursor := "  "
		if i == m.cursor {
			style = st.Selected
			cursor = "→ "
		}

		start, _ := m.snap.StartTime(i)
		line := fmt.Sprintf("%s%4d  %-10s %s%s",
			cursor,
			i,
			ux.FormatDuration(start),
			strings.Repeat("  ", m.snap.LoopTree.Depth(i)),
			m.labels.StepLabel(m.snap.Recipe.Step(i)),
		)
		b.WriteString(style.Render(line))
		b.WriteString(m.marker(i))
		b.WriteString("\n")
	}
	if end < m.snap.StepCount || m.offset > 0 {
		b.WriteString(st.Item.Render(st.Muted.Render(fmt.Sprintf("steps %d-%d of %d", m.offset, end-1, m.snap.StepCount))))
		b.WriteString("\n")
	}
}

// marker flags steps with diagnostics or inside an unclosed loop
func (m reviewModel) marker(i int) string {
	st := m.styles
	reasons := m.snap.ReasonsForStep(i)
	for _, r := range reasons {
		if r.IsError() {
			return " " + st.Error.Render("✗ "+string(r.Code))
		}
	}
	if len(reasons) > 0 {
		return " " + st.Warning.Render("! "+string(reasons[0].Code))
	}
	if m.snap.LoopTree.InsideUnclosedLoop(i) {
		return " " + st.Muted.Render("(unclosed loop)")
	}
	return ""
}

type detail struct {
	key   string
	value string
}

func (m reviewModel) renderDetail(b *strings.Builder) {
	st := m.styles
	i := m.cursor
	step := m.snap.Recipe.Step(i)
	b.WriteString(st.Header.Render(fmt.Sprintf("Step %d of %d", i, m.snap.StepCount-1)))
	b.WriteString("\n\n")

	start, _ := m.snap.StartTime(i)
	details := []detail{
		{"Action", m.labels.StepLabel(step)},
		{"Start", ux.FormatDuration(start)},
		{"Loop depth", fmt.Sprintf("%d", m.snap.LoopTree.Depth(i))},
	}
	if step != nil {
		details = append(details, detail{"Deploy", step.DeployDuration().String()})
		for _, col := range step.Columns() {
			p, _ := step.Property(col)
			value := "~"
			if p != nil {
				value = p.Raw()
			}
			details = append(details, detail{string(col), value})
		}
	}
	for _, d := range details {
		b.WriteString("  ")
		b.WriteString(st.Label.Render(fmt.Sprintf("%-15s:", d.key)))
		b.WriteString(" ")
		b.WriteString(st.Value.Render(d.value))
		b.WriteString("\n")
	}

	if node, ok := m.snap.LoopTree.ByStartIndex(i); ok {
		b.WriteString("\n  " + st.Label.Render("Loop:") + "\n")
		fmt.Fprintf(b, "    status %s, depth %d, iterations %d (raw %d)\n",
			node.Status, node.NestingDepth, node.EffectiveIterationCount, node.IterationCountRaw)
		if node.EndIndex != nil && node.Status == analysis.LoopValid {
			fmt.Fprintf(b, "    closes at step %d\n", *node.EndIndex)
		}
		if node.SingleIterationDuration != nil {
			fmt.Fprintf(b, "    single iteration %s\n", ux.FormatDuration(*node.SingleIterationDuration))
		}
	}

	if reasons := m.snap.ReasonsForStep(i); len(reasons) > 0 {
		b.WriteString("\n  " + st.Label.Render("Diagnostics:") + "\n")
		for _, r := range reasons {
			b.WriteString("    • " + m.reasonStyle(r).Render(r.String()) + "\n")
		}
	}
}

func (m reviewModel) renderDiagnostics(b *strings.Builder) {
	st := m.styles
	b.WriteString(st.Header.Render(fmt.Sprintf("Diagnostics (%d)", len(m.snap.Reasons))))
	b.WriteString("\n\n")
	if len(m.snap.Reasons) == 0 {
		b.WriteString(st.Item.Render(st.Success.Render("No issues found")))
		b.WriteString("\n")
		return
	}
	for _, r := range m.snap.Reasons {
		b.WriteString(st.Item.Render(m.reasonStyle(r).Render(r.String())))
		b.WriteString("\n")
	}
}

func (m reviewModel) reasonStyle(r analysis.Reason) lipgloss.Style {
	if r.IsError() {
		return m.styles.Error
	}
	return m.styles.Warning
}

// RunRecipeReview launches an interactive TUI for reviewing an analyzed recipe.
// Approval is only offered when the snapshot is valid.
func RunRecipeReview(snap *analysis.Snapshot, labels ux.StepLabeler) (*ReviewResult, error) {
	if snap.StepCount == 0 {
		return &ReviewResult{Approved: false, Reason: "Recipe has no steps"}, nil
	}

	program := tea.NewProgram(newReviewModel(snap, labels), tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running recipe review UI: %w", err)
	}

	m, ok := finalModel.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", finalModel)
	}
	if m.result == nil {
		return &ReviewResult{Approved: false, Reason: "Review ended without a decision"}, nil
	}
	return m.result, nil
}
