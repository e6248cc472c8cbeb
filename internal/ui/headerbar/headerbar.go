// Package headerbar renders the top line: brand, page tabs and the session.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is one top-level page.
type Tab struct {
	Key  string
	Name string
}

// Render returns the header for the given width. active is the index of the
// highlighted tab, -1 for none (detail pages). right is shown flush right,
// typically the logged-in user.
func Render(tabs []Tab, active int, right string, width int) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	brand := styles.Brand("xiamiu")
	sep := s.Subtle.Render("│")

	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		style := s.TabInactive
		if i == active {
			style = s.TabActive
		}
		parts = append(parts, style.Render(t.Key+" "+t.Name))
	}
	left := brand + " " + sep + strings.Join(parts, "")

	if right != "" {
		right = s.Muted.Render(right)
	}
	// Drop tab names, then the tabs, when the line gets too long.
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		parts = parts[:0]
		for i, t := range tabs {
			style := s.TabInactive
			if i == active {
				style = s.TabActive
			}
			parts = append(parts, style.Render(t.Key))
		}
		left = brand + " " + sep + strings.Join(parts, "")
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		left = brand
	}
	return render.Row(left, right, width)
}
