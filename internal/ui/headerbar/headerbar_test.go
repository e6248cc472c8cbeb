package headerbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/xiamiu/internal/ui/testutil"
)

var tabs = []Tab{{"1", "Home"}, {"2", "Artists"}, {"3", "Albums"}}

func TestRender(t *testing.T) {
	out := Render(tabs, 1, "amy", 80)
	plain := testutil.StripANSI(out)

	for _, want := range []string{"xiamiu", "1 Home", "2 Artists", "3 Albums"} {
		if !strings.Contains(plain, want) {
			t.Errorf("header missing %q: %q", want, plain)
		}
	}
	if !strings.HasSuffix(plain, "amy") {
		t.Errorf("user should be right aligned: %q", plain)
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("width = %d, want 80", w)
	}
}

func TestRender_Narrow(t *testing.T) {
	plain := testutil.StripANSI(Render(tabs, 0, "", 25))
	if strings.Contains(plain, "Artists") {
		t.Errorf("narrow header should drop tab names: %q", plain)
	}
	if !strings.Contains(plain, "xiamiu") {
		t.Errorf("brand missing: %q", plain)
	}
}

func TestRender_TooNarrow(t *testing.T) {
	if Render(tabs, 0, "", 10) != "" {
		t.Error("expected empty header below minimum width")
	}
}
