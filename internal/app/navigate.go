package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/app/popupctl"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui/textinput"
)

// navigate opens r, remembering the current page for back.
func (m *Model) navigate(r navctl.Route) tea.Cmd {
	if r == m.route {
		return nil
	}
	m.history.Push(m.route)
	m.returnTo = navctl.Route{}
	return m.open(r)
}

// open shows r without touching the history. List pages keep their
// snapshot; detail pages are fetched again.
func (m *Model) open(r navctl.Route) tea.Cmd {
	m.env.log.Debug("open page", zap.Stringer("route", r))
	m.route = r
	m.cover.Clear()

	var cmd tea.Cmd
	if c, ok := m.lists[r.Kind]; ok {
		m.detail = nil
		if c.status() == listview.StatusIdle {
			cmd = c.load()
		}
	} else {
		cmd = m.openDetail(r)
	}
	m.saveNavigation()
	return cmd
}

// back returns to the previous page and highlights the row that led here.
func (m *Model) back() tea.Cmd {
	r, ok := m.history.Pop()
	if !ok {
		return nil
	}
	from := m.route
	cmd := m.open(r)
	m.returnTo = from
	if c, ok := m.lists[r.Kind]; ok && from.ID != "" {
		c.selectID(from.ID)
	}
	return cmd
}

// switchTab jumps to a top-level page.
func (m *Model) switchTab(k navctl.Kind) tea.Cmd {
	r := navctl.Route{Kind: k}
	if k == navctl.KindSearch {
		r.ID = m.lastQuery
	}
	cmd := m.navigate(r)
	if k == navctl.KindSearch && r.ID == "" {
		return tea.Batch(cmd, m.promptSearch())
	}
	return cmd
}

// cycleTab moves through the tabs. From a detail page it starts at Home.
func (m *Model) cycleTab(delta int) tea.Cmd {
	n := len(navctl.Tabs)
	i := navctl.TabIndex(m.route.Kind)
	if i < 0 {
		return m.switchTab(navctl.KindHome)
	}
	return m.switchTab(navctl.Tabs[((i+delta)%n+n)%n])
}

// reload fetches the current page again.
func (m *Model) reload() tea.Cmd {
	if c, ok := m.lists[m.route.Kind]; ok {
		m.setStatus("Reloading "+strings.ToLower(c.def().Title)+"…", false)
		return c.load()
	}
	m.cover.Clear()
	return m.openDetail(m.route)
}

func (m *Model) promptSearch() tea.Cmd {
	return m.Popups.ShowTextInput(popupctl.InputSearch, "Search", []textinput.Field{
		{Label: "Artists, albums and songs", Value: m.lastQuery, CharLimit: 100},
	}, nil)
}

func (m *Model) submitSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	m.lastQuery = query
	return m.navigate(navctl.Route{Kind: navctl.KindSearch, ID: query})
}

func (m *Model) promptFilter(c collection) tea.Cmd {
	return m.Popups.ShowTextInput(popupctl.InputFilter, "Filter "+strings.ToLower(c.def().Title),
		[]textinput.Field{{Label: "Name contains", Value: c.searchTerm(), CharLimit: 100}},
		c.kind())
}

// currentList returns the list page on screen.
func (m *Model) currentList() (collection, bool) {
	c, ok := m.lists[m.route.Kind]
	return c, ok
}

// selectedRoute is the link under the cursor of the current page.
func (m *Model) selectedRoute() (navctl.Route, bool) {
	if c, ok := m.currentList(); ok {
		return c.selectedRoute()
	}
	if m.detail != nil {
		return m.detail.selectedRoute()
	}
	return navctl.Route{}, false
}
