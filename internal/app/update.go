package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/app/handler"
	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/app/popupctl"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/keymap"
	"github.com/llehouerou/xiamiu/internal/lastfm"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/action"
	"github.com/llehouerou/xiamiu/internal/ui/confirm"
	"github.com/llehouerou/xiamiu/internal/ui/coverart"
	"github.com/llehouerou/xiamiu/internal/ui/helpbindings"
	"github.com/llehouerou/xiamiu/internal/ui/textinput"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startMsg:
		cmds := []tea.Cmd{m.open(m.route)}
		if m.genres.wanted {
			cmds = append(cmds, m.genres.load(m.env))
		}
		return m, tea.Batch(cmds...)

	case action.Msg:
		return m.handleAction(msg)

	case collectionLoadedMsg:
		return m, m.handleCollectionLoaded(msg)

	case genreFilterMsg:
		if c, ok := m.lists[msg.Kind]; ok {
			if msg.Err != nil {
				m.env.log.Warn(errmsg.FormatWith(errmsg.OpCrossRefLoad, msg.GenreID, msg.Err))
				if msg.Kind == m.route.Kind {
					m.setStatus("Genre filter unavailable, showing everything", true)
				}
			}
			c.genreLoaded(msg)
		}
		return m, nil

	case genresLoadedMsg:
		return m, m.handleGenresLoaded(msg)

	case detailLoadedMsg:
		return m, m.handleDetailLoaded(msg)

	case sectionMsg:
		return m, m.handleSection(msg)

	case lastfm.SimilarResultMsg:
		m.handleSimilar(msg)
		return m, nil

	case coverart.LoadedMsg:
		m.handleCover(msg)
		return m, nil

	case sessionCheckedMsg:
		return m, m.handleSessionChecked(msg)

	case loginMsg:
		return m, m.handleLogin(msg)

	case commentPostedMsg:
		return m, m.handleCommentPosted(msg)

	case commentDeletedMsg:
		return m, m.handleCommentDeleted(msg)
	}

	return m, m.Popups.Update(msg)
}

// bodySize is the area left for the page between header and footer.
func (m Model) bodySize() (width, height int) {
	return m.width, max(m.height-ui.HeaderHeight-ui.FooterHeight, 1)
}

func (m *Model) resize() {
	w, h := m.bodySize()
	for _, c := range m.lists {
		c.setSize(w, h)
	}
	if m.detail != nil {
		m.detail.setSize(w, h)
	}
	m.Popups.SetSize(m.width, m.height)
}

// contexts are the key binding contexts of the current page, most specific
// first.
func (m Model) contexts() []string {
	ctx := []string{keymap.ContextCursor}
	if m.route.Kind.IsList() {
		return append(ctx, keymap.ContextList)
	}
	if m.route.Kind == navctl.KindSearch {
		ctx = append(ctx, keymap.ContextSearch)
	}
	return append(ctx, keymap.ContextDetail)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.Popups.HandleKey(msg); handled {
		return m, cmd
	}
	m.status, m.statusErr = "", false

	a := m.keys.Resolve(msg.String(), m.contexts()...)
	if a == "" {
		return m, nil
	}
	if a == keymap.ActionQuit {
		m.saveNavigation()
		return m, tea.Quit
	}

	_, cmd := handler.Chain(
		func() handler.Result { return m.handleCursorAction(a, msg) },
		func() handler.Result { return m.handleListAction(a) },
		func() handler.Result { return m.handleDetailAction(a) },
		func() handler.Result { return m.handleGlobalAction(a) },
	)
	return m, cmd
}

func (m *Model) handleCursorAction(a keymap.Action, msg tea.KeyMsg) handler.Result {
	switch a {
	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionHalfUp,
		keymap.ActionHalfDown, keymap.ActionTop, keymap.ActionBottom:
		if c, ok := m.currentList(); ok {
			c.moveCursor(msg)
		} else if m.detail != nil {
			m.detail.rows.Update(msg)
		}
		return handler.HandledNoCmd
	case keymap.ActionOpen:
		r, ok := m.selectedRoute()
		if !ok {
			return handler.HandledNoCmd
		}
		return handler.Handled(m.navigate(r))
	}
	return handler.NotHandled
}

func (m *Model) handleListAction(a keymap.Action) handler.Result {
	c, ok := m.currentList()
	if !ok {
		return handler.NotHandled
	}
	switch a {
	case keymap.ActionFilter:
		return handler.Handled(m.promptFilter(c))
	case keymap.ActionCycleSort:
		m.setStatus("Sorted by "+c.cycleSort(), false)
	case keymap.ActionCycleFacet, keymap.ActionCycleFacet2:
		n := 0
		if a == keymap.ActionCycleFacet2 {
			n = 1
		}
		label, err := c.cycleFacet(n)
		if err != nil {
			m.setStatus("No such filter on this page", false)
			break
		}
		m.setStatus(label, false)
	case keymap.ActionCycleGenre:
		return handler.Handled(m.cycleGenre(c))
	case keymap.ActionClearGenre:
		c.clearGenre()
		m.setStatus("Genre filter cleared", false)
	case keymap.ActionResetFilters:
		c.resetFilters()
		m.setStatus("Filters reset", false)
	case keymap.ActionNextPage:
		if !c.nextPage() {
			m.setStatus("Last page", false)
		}
	case keymap.ActionPrevPage:
		if !c.prevPage() {
			m.setStatus("First page", false)
		}
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) handleDetailAction(a keymap.Action) handler.Result {
	if m.detail == nil {
		return handler.NotHandled
	}
	switch a {
	case keymap.ActionNewSearch:
		return handler.Handled(m.promptSearch())
	case keymap.ActionComment:
		return handler.Handled(m.promptComment())
	case keymap.ActionDeleteComment:
		return handler.Handled(m.deleteComment())
	}
	return handler.NotHandled
}

var tabActions = map[keymap.Action]navctl.Kind{
	keymap.ActionViewHome:    navctl.KindHome,
	keymap.ActionViewArtists: navctl.KindArtists,
	keymap.ActionViewAlbums:  navctl.KindAlbums,
	keymap.ActionViewSongs:   navctl.KindSongs,
	keymap.ActionViewGenres:  navctl.KindGenres,
	keymap.ActionViewSearch:  navctl.KindSearch,
	keymap.ActionViewMyMusic: navctl.KindMyMusic,
}

func (m *Model) handleGlobalAction(a keymap.Action) handler.Result {
	if k, ok := tabActions[a]; ok {
		return handler.Handled(m.switchTab(k))
	}
	switch a {
	case keymap.ActionHelp:
		return handler.Handled(m.Popups.ShowHelp(append(m.contexts(), keymap.ContextGlobal)))
	case keymap.ActionBack:
		return handler.Handled(m.back())
	case keymap.ActionReload:
		return handler.Handled(m.reload())
	case keymap.ActionLogin:
		return handler.Handled(m.toggleLogin())
	case keymap.ActionNextTab:
		return handler.Handled(m.cycleTab(1))
	case keymap.ActionPrevTab:
		return handler.Handled(m.cycleTab(-1))
	}
	return handler.NotHandled
}

// cycleGenre moves the page's genre filter to the next genre, loading the
// genre list first when needed.
func (m *Model) cycleGenre(c collection) tea.Cmd {
	if !c.def().GenreFilter {
		m.setStatus("No genre filter on this page", false)
		return nil
	}
	if m.genres.status != listview.StatusReady {
		m.genres.waiting = c.kind()
		m.setStatus("Loading genres…", false)
		return m.genres.load(m.env)
	}
	g, ok := m.genres.next(c.currentGenre())
	if !ok {
		c.clearGenre()
		m.setStatus("Genre filter cleared", false)
		return nil
	}
	m.setStatus("Genre: "+g.Name, false)
	return c.filterGenre(g.ID())
}

func (m *Model) handleGenresLoaded(msg genresLoadedMsg) tea.Cmd {
	m.genres.loaded(msg)
	waiting := m.genres.waiting
	m.genres.waiting = ""
	if msg.Err != nil {
		m.env.log.Warn(errmsg.Format(errmsg.OpGenresLoad, msg.Err))
		if waiting != "" {
			m.setStatus(errmsg.Format(errmsg.OpGenresLoad, msg.Err), true)
		}
		return nil
	}
	if waiting == "" || waiting != m.route.Kind {
		return nil
	}
	c, ok := m.lists[waiting]
	if !ok {
		return nil
	}
	return m.cycleGenre(c)
}

func (m *Model) handleCollectionLoaded(msg collectionLoadedMsg) tea.Cmd {
	c, ok := m.lists[msg.Kind]
	if !ok {
		return nil
	}
	cmd := c.loaded(msg)
	if msg.Kind == m.route.Kind && c.status() == listview.StatusReady && m.selectOnce != "" {
		c.selectID(m.selectOnce)
		m.selectOnce = ""
	}
	return cmd
}

// handleAction handles the results of popups.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch msg.Source {
	case helpbindings.Source:
		m.Popups.Hide(popupctl.Help)
	case textinput.Source:
		res, ok := msg.Action.(textinput.Result)
		mode := m.Popups.InputMode()
		m.Popups.Hide(popupctl.TextInput)
		if !ok || res.Canceled {
			return m, nil
		}
		return m, m.handleInput(mode, res)
	case confirm.Source:
		m.Popups.Hide(popupctl.Confirm)
		res, ok := msg.Action.(confirm.Result)
		if !ok || !res.Confirmed {
			return m, nil
		}
		if req, ok := res.Context.(deleteRequest); ok {
			return m, m.confirmDelete(req)
		}
	}
	return m, nil
}

func (m *Model) handleInput(mode popupctl.InputMode, res textinput.Result) tea.Cmd {
	switch mode {
	case popupctl.InputFilter:
		kind, _ := res.Context.(navctl.Kind)
		if c, ok := m.lists[kind]; ok {
			c.setSearch(res.Value(0))
		}
	case popupctl.InputSearch:
		return m.submitSearch(res.Value(0))
	case popupctl.InputLogin:
		username, password := strings.TrimSpace(res.Value(0)), res.Value(1)
		if username == "" || password == "" {
			m.setStatus("Username and password are required", true)
			return nil
		}
		m.setStatus("Logging in…", false)
		return m.loginCmd(username, password)
	case popupctl.InputComment:
		return m.submitComment(res)
	}
	return nil
}

func (m *Model) handleDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	p := m.detail
	if p == nil || p.version != msg.Version {
		m.env.log.Debug("dropping stale page load", zap.Uint64("version", msg.Version))
		return nil
	}
	if msg.Err != nil {
		m.env.log.Warn(errmsg.FormatWith(msg.Op, p.route.ID, msg.Err))
		if p.route.Kind == navctl.KindMyMusic && errors.Is(msg.Err, api.ErrUnauthorized) {
			m.dropSession()
			p.ready("My music", "Your session expired. Log in with L.")
			return nil
		}
		p.status = listview.StatusError
		p.err = msg.Err
		return nil
	}

	p.status = listview.StatusReady
	if msg.Apply != nil {
		msg.Apply(p)
	}
	p.layout()
	if m.selectOnce != "" {
		id := m.selectOnce
		m.selectOnce = ""
		p.rows.SelectFunc(func(item detailItem) bool { return item.route.ID == id })
	} else if m.returnTo.Kind != "" {
		p.selectRoute(m.returnTo)
	}
	m.returnTo = navctl.Route{}
	return tea.Batch(m.secondaryLoads(p), m.ensureCover())
}

func (m *Model) handleSection(msg sectionMsg) tea.Cmd {
	p := m.detail
	if p == nil || p.version != msg.Version {
		return nil
	}
	if msg.Err != nil {
		m.env.log.Warn("section unavailable",
			zap.String("op", string(msg.Op)),
			zap.Stringer("route", p.route),
			zap.Error(msg.Err))
		return nil
	}
	if msg.Apply != nil {
		msg.Apply(p)
		p.layout()
	}
	return m.ensureCover()
}

func (m *Model) handleSimilar(msg lastfm.SimilarResultMsg) {
	p := m.detail
	if p == nil || p.version != msg.Version {
		return
	}
	if msg.Err != nil {
		m.env.log.Warn(errmsg.FormatWith(errmsg.OpSimilarLoad, msg.ArtistID, msg.Err))
		return
	}
	p.setSection(secSimilar, "Similar artists", similarItems(msg.Items))
}

// ensureCover starts the download of the page picture once.
func (m *Model) ensureCover() tea.Cmd {
	p := m.detail
	if p == nil || !m.cover.Enabled() || p.coverURL == "" || p.coverRequested == p.coverURL {
		return nil
	}
	p.coverRequested = p.coverURL
	p.layout()
	return coverart.LoadCmd(m.covers, p.coverURL, m.env.timeout)
}

func (m *Model) handleCover(msg coverart.LoadedMsg) {
	p := m.detail
	if p == nil || msg.URL != p.coverURL {
		return
	}
	if msg.Err != nil {
		m.env.log.Warn(errmsg.FormatWith(errmsg.OpCoverLoad, msg.URL, msg.Err))
		return
	}
	m.cover.Show(msg.URL, msg.Image)
}
