package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/ui/action"
	"github.com/llehouerou/xiamiu/internal/ui/testutil"
)

const testContext = "ctx"

func newTestConfirm(title, message string, context any) *testutil.PopupHarness {
	m := New()
	m.SetSize(50, 10)
	m.Show(title, message, context)
	return testutil.NewPopupHarness(&m)
}

func getResult(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	cmd := h.LastCommand()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := testutil.ExecuteCmd(cmd)
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if actionMsg.Source != Source {
		t.Errorf("Source = %q, want %q", actionMsg.Source, Source)
	}
	result, ok := actionMsg.Action.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", actionMsg.Action)
	}
	return result
}

func TestConfirm_Keys(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"enter", true},
		{"y", true},
		{"Y", true},
		{"esc", false},
		{"n", false},
		{"N", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			h := newTestConfirm("Delete comment?", "This cannot be undone.", testContext)

			switch tt.key {
			case "enter":
				h.SendEnter()
			case "esc":
				h.SendEscape()
			default:
				h.SendKey(tt.key)
			}

			result := getResult(t, h)
			if result.Confirmed != tt.want {
				t.Errorf("Confirmed = %v, want %v", result.Confirmed, tt.want)
			}
			if result.Context != testContext {
				t.Errorf("Context = %v, want %q", result.Context, testContext)
			}
			if h.Popup().(*Model).Active() {
				t.Error("popup should be inactive after an answer")
			}
		})
	}
}

func TestConfirm_OtherKeysAreIgnored(t *testing.T) {
	h := newTestConfirm("Delete comment?", "", nil)

	if cmd := h.SendKey("x"); cmd != nil {
		t.Error("expected no command for an unrelated key")
	}
	if !h.Popup().(*Model).Active() {
		t.Error("popup should still wait for an answer")
	}
}

func TestConfirm_InactiveIgnoresKeys(t *testing.T) {
	m := New()
	m.SetSize(50, 10)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("inactive popup should not answer")
	}
	if m.View() != "" {
		t.Error("inactive popup should render nothing")
	}
}

func TestConfirm_View(t *testing.T) {
	h := newTestConfirm("Delete comment?", "Great record", nil)

	view := testutil.StripANSI(h.View())
	for _, want := range []string{"Delete comment?", "Great record", "esc/n: cancel"} {
		if !testutil.ContainsLine(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
