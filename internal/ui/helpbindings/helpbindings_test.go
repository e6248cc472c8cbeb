package helpbindings

import (
	"testing"

	"github.com/llehouerou/xiamiu/internal/keymap"
	"github.com/llehouerou/xiamiu/internal/ui/action"
	"github.com/llehouerou/xiamiu/internal/ui/testutil"
)

func newTestHelpPopup(height int, contexts ...string) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetContexts(contexts)
	m.SetSize(80, height)
	return &m, testutil.NewPopupHarness(&m)
}

func assertClosed(t *testing.T, h *testutil.PopupHarness) {
	t.Helper()
	msg := testutil.ExecuteCmd(h.LastCommand())
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"?", "q"} {
		_, h := newTestHelpPopup(24, keymap.ContextGlobal)
		h.SendKey(key)
		assertClosed(t, h)
	}
	_, h := newTestHelpPopup(24, keymap.ContextGlobal)
	h.SendEscape()
	assertClosed(t, h)
}

func TestHelpBindings_Scroll(t *testing.T) {
	m, h := newTestHelpPopup(15, keymap.ContextGlobal, keymap.ContextList)

	h.SendKey("k")
	if m.scrollOffset != 0 {
		t.Errorf("scroll at top moved to %d", m.scrollOffset)
	}

	h.SendKey("j")
	h.SendKey("j")
	if m.scrollOffset != 2 {
		t.Errorf("scrollOffset = %d, want 2", m.scrollOffset)
	}

	for range 100 {
		h.SendKey("j")
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want clamped to %d", m.scrollOffset, m.maxScroll())
	}
	if !h.ViewContains("j/k scroll") {
		t.Error("footer should mention scrolling")
	}
}

func TestHelpBindings_View(t *testing.T) {
	_, h := newTestHelpPopup(80, keymap.ContextGlobal, keymap.ContextDetail)

	for _, want := range []string{"Help", "Global", "Detail pages", "Write a comment", "?/esc close"} {
		if !h.ViewContains(want) {
			t.Errorf("view missing %q", want)
		}
	}
	if h.ViewContains("Lists") {
		t.Error("view should only show the requested contexts")
	}
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	m.SetContexts([]string{keymap.ContextGlobal})
	if m.View() != "" {
		t.Error("expected empty view without size")
	}
}
