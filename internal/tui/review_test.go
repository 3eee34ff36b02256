package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/recipe"
	"github.com/felixgeelhaar/epistep/internal/schema"
)

func snapshotOf(t *testing.T, doc string) *analysis.Snapshot {
	t.Helper()
	s := schema.Default()
	r, err := recipe.DecodeYAML(strings.NewReader(doc), s)
	if err != nil {
		t.Fatalf("decode recipe: %v", err)
	}
	return analysis.NewAnalyzer(analysis.WithLoopActions(s.LoopActions())).Analyze(r)
}

const validRecipe = `steps:
  - {action: 30, setpoint: 600}
  - {action: 120, task: 2}
  - {action: 10, step_duration: 5}
  - {action: 130}
`

const unclosedRecipe = `steps:
  - {action: 120, task: 2}
  - {action: 10, step_duration: 5}
`

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m reviewModel, msgs ...tea.Msg) (reviewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(reviewModel)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRunRecipeReview_EmptyRecipe(t *testing.T) {
	result, err := RunRecipeReview(analysis.Analyze(recipe.New()), schema.Default())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Approved {
		t.Error("empty recipe must not be approved")
	}
}

func TestReviewModel_Init(t *testing.T) {
	if cmd := newReviewModel(snapshotOf(t, validRecipe), schema.Default()).Init(); cmd != nil {
		t.Error("Expected Init to return nil cmd")
	}
}

func TestReviewModel_Navigation(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, _ = press(t, m, runes("j"))
	if m.cursor != 1 {
		t.Errorf("Expected cursor at 1, got %d", m.cursor)
	}

	m, _ = press(t, m, runes("k"), runes("k"))
	if m.cursor != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", m.cursor)
	}

	m, _ = press(t, m, runes("G"), runes("j"))
	if m.cursor != 3 {
		t.Errorf("Expected cursor to stay at last step, got %d", m.cursor)
	}

	m, _ = press(t, m, runes("g"))
	if m.cursor != 0 {
		t.Errorf("Expected cursor back at 0, got %d", m.cursor)
	}
}

func TestReviewModel_Scrolling(t *testing.T) {
	doc := "steps:\n" + strings.Repeat("  - {action: 20}\n", 30)
	m := newReviewModel(snapshotOf(t, doc), schema.Default())

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 15})
	rows := m.visibleRows()
	if rows != 5 {
		t.Fatalf("visibleRows() = %d, want 5", rows)
	}

	for i := 0; i < 7; i++ {
		m, _ = press(t, m, runes("j"))
	}
	if m.offset != 3 {
		t.Errorf("offset = %d, want 3 so the cursor stays visible", m.offset)
	}
	if !strings.Contains(m.View(), "steps 3-7 of 30") {
		t.Errorf("expected scroll indicator in view:\n%s", m.View())
	}
}

func TestReviewModel_DetailView(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != viewDetail {
		t.Fatalf("Expected detail mode, got %v", m.mode)
	}

	view := m.View()
	for _, want := range []string{"Step 1 of 3", "ForLoop", "iterations 2", "closes at step 3", "single iteration 5s"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != viewList {
		t.Errorf("Expected list mode after esc, got %v", m.mode)
	}
}

func TestReviewModel_Diagnostics(t *testing.T) {
	m := newReviewModel(snapshotOf(t, unclosedRecipe), schema.Default())

	if !strings.Contains(m.View(), "(unclosed loop)") && !strings.Contains(m.View(), "LOOP-002") {
		t.Errorf("list view should flag the unclosed loop:\n%s", m.View())
	}

	m, _ = press(t, m, runes("d"))
	view := m.View()
	if !strings.Contains(view, "Diagnostics (1)") || !strings.Contains(view, "loop is never closed") {
		t.Errorf("diagnostics view missing reason:\n%s", view)
	}

	m, _ = press(t, m, runes("d"))
	if m.mode != viewList {
		t.Error("d should toggle back to the list")
	}
}

func TestReviewModel_Approve(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, cmd := press(t, m, runes("a"))
	if m.result == nil || !m.result.Approved {
		t.Fatal("Expected recipe to be approved")
	}
	if !isQuit(cmd) {
		t.Error("Expected quit after approval")
	}
	if !strings.Contains(m.View(), "Recipe Approved") {
		t.Errorf("unexpected final view: %q", m.View())
	}
}

func TestReviewModel_ApproveBlockedWhenInvalid(t *testing.T) {
	m := newReviewModel(snapshotOf(t, unclosedRecipe), schema.Default())

	if strings.Contains(m.View(), "approve") {
		t.Error("help should not offer approval for an invalid recipe")
	}

	m, cmd := press(t, m, runes("a"))
	if m.result != nil {
		t.Fatalf("invalid recipe must not be approved, got %+v", m.result)
	}
	if isQuit(cmd) {
		t.Error("approval attempt should not quit")
	}
	if !strings.Contains(m.View(), "Approval disabled: 0 errors, 1 warnings") {
		t.Errorf("expected notice in view:\n%s", m.View())
	}

	m, _ = press(t, m, runes("j"))
	if m.notice != "" {
		t.Error("notice should clear on the next key")
	}
}

func TestReviewModel_Reject(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, _ = press(t, m, runes("r"))
	if !m.editingReason {
		t.Fatal("Expected reason editing to start")
	}

	m, _ = press(t, m, runes("too"), tea.KeyMsg{Type: tea.KeySpace}, runes("hott"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.rejectionInput != "too hot" {
		t.Errorf("rejectionInput = %q, want %q", m.rejectionInput, "too hot")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.result == nil || m.result.Approved || m.result.Reason != "too hot" {
		t.Fatalf("unexpected result %+v", m.result)
	}
	if !isQuit(cmd) {
		t.Error("Expected quit after rejection")
	}
}

func TestReviewModel_RejectCancelled(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, _ = press(t, m, runes("r"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.editingReason || m.rejectionInput != "" || m.result != nil {
		t.Errorf("esc should abandon the rejection: %+v", m)
	}
}

func TestReviewModel_Quit(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())

	m, cmd := press(t, m, runes("q"))
	if m.result == nil || m.result.Approved {
		t.Fatal("quitting should reject")
	}
	if m.result.Reason != "Review cancelled" {
		t.Errorf("Reason = %q", m.result.Reason)
	}
	if !isQuit(cmd) {
		t.Error("Expected quit command")
	}
}

func TestReviewModel_ListView(t *testing.T) {
	m := newReviewModel(snapshotOf(t, validRecipe), schema.Default())
	view := m.View()

	for _, want := range []string{"Recipe Review", "Steps: 4 | Loops: 1 | Total: 10s | valid", "SetTemperature", "    Wait", "→"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
}
