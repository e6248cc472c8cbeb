package app

import (
	"strconv"
	"strings"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/keymap"
	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/headerbar"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < ui.MinWidth {
		return "Terminal too narrow"
	}

	_, bodyHeight := m.bodySize()
	view := strings.Join([]string{
		m.renderHeader(),
		fitHeight(m.renderBody(), bodyHeight),
		m.renderFooter(),
	}, "\n")
	view = m.Popups.RenderOverlay(view)

	// Kitty graphics are written around the frame, outside the layout.
	out := m.cover.TakePending() + view
	if m.detail != nil && m.detail.showsCover() && m.cover.HasImage() {
		out += m.cover.Placement(ui.HeaderHeight+1, m.width-ui.CoverWidth+1)
	}
	return out
}

func (m Model) renderHeader() string {
	tabs := make([]headerbar.Tab, len(navctl.Tabs))
	for i, k := range navctl.Tabs {
		tabs[i] = headerbar.Tab{Key: strconv.Itoa(i + 1), Name: navctl.TabTitle(k)}
	}

	right := "not logged in"
	switch {
	case m.user != nil:
		right = m.user.UserName
	case m.session.Valid():
		right = m.session.Username
	}
	return headerbar.Render(tabs, navctl.TabIndex(m.route.Kind), right, m.width) + "\n"
}

func (m Model) renderBody() string {
	if c, ok := m.currentList(); ok {
		return c.view(m.width, m.genres, m.spinner.View())
	}
	if m.detail != nil {
		return m.detail.view(m.width, m.me(), m.cover.Placeholder(), m.spinner.View())
	}
	return ""
}

func (m Model) renderFooter() string {
	s := styles.T().S()

	var status string
	switch {
	case m.status != "" && m.statusErr:
		status = s.Error.Render(render.Truncate(m.status, m.width))
	case m.status != "":
		status = s.Success.Render(render.Truncate(m.status, m.width))
	default:
		if c, ok := m.currentList(); ok {
			status = s.Muted.Render(c.footer())
		} else {
			status = s.Muted.Render(render.Truncate(m.breadcrumb(), m.width))
		}
	}
	return status + "\n" + s.Subtle.Render(render.Truncate(m.hints(), m.width))
}

// breadcrumb shows where back leads on detail pages.
func (m Model) breadcrumb() string {
	if m.history.Len() == 0 {
		return m.route.String()
	}
	return m.route.String() + "  (esc to go back)"
}

// hints lists the main keys of the current page.
func (m Model) hints() string {
	var pairs [][2]string
	if m.route.Kind.IsList() {
		pairs = [][2]string{
			{m.key(keymap.ActionFilter), "filter"},
			{m.key(keymap.ActionCycleSort), "sort"},
			{m.key(keymap.ActionCycleGenre), "genre"},
			{m.key(keymap.ActionNextPage), "page"},
			{m.key(keymap.ActionOpen), "open"},
		}
	} else {
		pairs = [][2]string{{m.key(keymap.ActionOpen), "open"}}
		if m.route.Kind == navctl.KindSearch {
			pairs = append(pairs, [2]string{m.key(keymap.ActionNewSearch), "search"})
		}
		if m.detail != nil && m.detail.target != "" {
			pairs = append(pairs, [2]string{m.key(keymap.ActionComment), "comment"})
		}
		pairs = append(pairs, [2]string{m.key(keymap.ActionBack), "back"})
	}
	pairs = append(pairs, [2]string{m.key(keymap.ActionHelp), "help"}, [2]string{m.key(keymap.ActionQuit), "quit"})

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == "" {
			continue
		}
		parts = append(parts, p[0]+" "+p[1])
	}
	return strings.Join(parts, "  ")
}

func (m Model) key(a keymap.Action) string {
	keys := m.keys.KeysFor(a)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// fitHeight pads or cuts s to exactly height lines.
func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
