package app

import (
	"slices"

	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/state"
)

// detailKinds are the routes that address one entity.
var detailKinds = []navctl.Kind{
	navctl.KindArtist, navctl.KindAlbum, navctl.KindSong, navctl.KindGenre, navctl.KindStars, navctl.KindUser,
}

func knownKind(k navctl.Kind) bool {
	return slices.Contains(navctl.Tabs, k) || slices.Contains(detailKinds, k)
}

// restoreSettings hands the saved controls of each list page to it. They are
// applied when the page's first snapshot arrives.
func (m *Model) restoreSettings() {
	if m.env.state == nil {
		return
	}
	for _, c := range m.lists {
		name := c.def().Name
		s, err := m.env.state.GetViewSettings(name)
		if err != nil {
			m.env.log.Warn(errmsg.FormatWith(errmsg.OpSettingsLoad, name, err))
			continue
		}
		if s == nil {
			continue
		}
		c.applySettings(*s)
		if s.GenreID != "" {
			m.genres.wanted = true
		}
	}
}

// restoreNavigation reopens the page the app was closed on.
func (m *Model) restoreNavigation() {
	if m.env.state == nil {
		return
	}
	nav, err := m.env.state.GetNavigation()
	if err != nil {
		m.env.log.Warn("could not restore navigation", zap.Error(err))
		return
	}
	if nav == nil {
		return
	}
	r := navctl.Route{Kind: navctl.Kind(nav.Page), ID: nav.EntityID}
	if !knownKind(r.Kind) || !r.Restorable() {
		return
	}
	m.route = r
	m.selectOnce = nav.SelectedID
	m.env.log.Debug("restored navigation", zap.Stringer("route", r))
}

// saveNavigation records the current page and highlighted row.
func (m *Model) saveNavigation() {
	if m.env.state == nil || !m.route.Restorable() {
		return
	}
	m.env.state.SaveNavigation(state.NavigationState{
		Page:       string(m.route.Kind),
		EntityID:   m.route.ID,
		SelectedID: m.selectedID(),
	})
}

// selectedID is the id of the highlighted row of the current page.
func (m *Model) selectedID() string {
	if c, ok := m.lists[m.route.Kind]; ok {
		return c.selectedID()
	}
	if m.detail != nil {
		if r, ok := m.detail.selectedRoute(); ok {
			return r.ID
		}
	}
	return ""
}
