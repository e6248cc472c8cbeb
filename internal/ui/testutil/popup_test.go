package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/ui/popup"
)

// mockPopup is a simple popup implementation for testing the harness.
type mockPopup struct {
	content    string
	width      int
	height     int
	keyHistory []string
}

var _ popup.Popup = (*mockPopup)(nil)

func (m *mockPopup) Init() tea.Cmd {
	return func() tea.Msg { return "init" }
}

func (m *mockPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.keyHistory = append(m.keyHistory, key.String())
		if key.Type == tea.KeyEnter {
			return m, func() tea.Msg { return "enter-pressed" }
		}
	}
	return m, nil
}

func (m *mockPopup) View() string {
	return m.content
}

func (m *mockPopup) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func TestNewPopupHarness(t *testing.T) {
	mock := &mockPopup{content: "test content"}
	h := NewPopupHarness(mock)

	if h.Popup() != mock {
		t.Error("Popup() should return the underlying popup")
	}
	if len(h.Commands()) != 1 {
		t.Errorf("expected 1 init command, got %d", len(h.Commands()))
	}
	if msg := ExecuteCmd(h.LastCommand()); msg != "init" {
		t.Errorf("init command message = %v, want init", msg)
	}
}

func TestPopupHarness_Keys(t *testing.T) {
	mock := &mockPopup{}
	h := NewPopupHarness(mock)

	h.SendKey("a")
	h.SendTab()
	h.SendEscape()
	if cmd := h.SendEnter(); ExecuteCmd(cmd) != "enter-pressed" {
		t.Error("SendEnter should return the popup's command")
	}

	want := []string{"a", "tab", "esc", "enter"}
	if len(mock.keyHistory) != len(want) {
		t.Fatalf("keys = %v, want %v", mock.keyHistory, want)
	}
	for i := range want {
		if mock.keyHistory[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, mock.keyHistory[i], want[i])
		}
	}
}

func TestPopupHarness_ViewContains(t *testing.T) {
	h := NewPopupHarness(&mockPopup{content: "\x1b[1mbold\x1b[0m line\nsecond"})

	if !h.ViewContains("bold line") {
		t.Error("ViewContains should match across stripped styles")
	}
	if h.ViewContains("third") {
		t.Error("ViewContains matched missing text")
	}
}

func TestExecuteCmd_Nil(t *testing.T) {
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should return nil")
	}
}
