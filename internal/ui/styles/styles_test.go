package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestGradient_KeepsText(t *testing.T) {
	for _, text := range []string{"xiamiu", "虾米", "a"} {
		got := ansi.Strip(Gradient(text, "#ff0000", "#0000ff", true))
		if got != text {
			t.Errorf("Gradient(%q) stripped = %q", text, got)
		}
	}
	if Gradient("", "#ff0000", "#0000ff", false) != "" {
		t.Error("Gradient(\"\") should be empty")
	}
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(3, "#ff0000", "#0000ff")
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if colorToHex(colors[0]) == colorToHex(colors[2]) {
		t.Errorf("endpoints should differ, both %s", colorToHex(colors[0]))
	}
}

func TestLipglossToColor_ANSIFallback(t *testing.T) {
	r, g, b, _ := lipglossToColor(lipgloss.Color("240")).RGBA()
	if r != g || g != b {
		t.Errorf("ANSI color should map to gray, got %d %d %d", r, g, b)
	}
}

func TestPanelStyle(t *testing.T) {
	out := PanelStyle(true).Render("x")
	if !strings.Contains(ansi.Strip(out), "╭") {
		t.Errorf("PanelStyle should draw a rounded border: %q", out)
	}
}
