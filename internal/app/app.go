// Package app is the root bubbletea model: page routing, list and detail
// pages, popups and the login session.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/app/popupctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/keymap"
	"github.com/llehouerou/xiamiu/internal/lastfm"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/lyrics"
	"github.com/llehouerou/xiamiu/internal/state"
	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/coverart"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
	"github.com/llehouerou/xiamiu/internal/views"
)

const defaultTimeout = 10 * time.Second

// Options configures the root model.
type Options struct {
	Catalog Catalog
	State   state.Interface

	Lyrics  *lyrics.Source        // nil hides lyrics
	Similar lastfm.SimilarFetcher // nil hides similar artists
	Covers  *coverart.Loader      // nil hides cover art
	Images  bool                  // terminal supports kitty graphics

	PageSize        int
	Locale          string
	Timeout         time.Duration
	RememberSession bool
	Logger          *zap.Logger
}

// env is shared by the model and its pages. Model is copied by value on
// every update, so anything mutated by pages lives here.
type env struct {
	catalog Catalog
	state   state.Interface
	views   views.Options
	timeout time.Duration
	log     *zap.Logger
	seq     uint64
}

// next returns a fresh load version.
func (e *env) next() uint64 {
	e.seq++
	return e.seq
}

// ctx returns a context bounded by the request timeout.
func (e *env) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.timeout)
}

// Model is the root bubbletea model.
type Model struct {
	env      *env
	lyrics   *lyrics.Source
	similar  lastfm.SimilarFetcher
	covers   *coverart.Loader
	cover    *coverart.Renderer
	remember bool

	keys    *keymap.Resolver
	Popups  *popupctl.Manager
	spinner spinner.Model

	route   navctl.Route
	history *navctl.History
	lists   map[navctl.Kind]collection
	detail  *detailPage
	genres  *genreSet

	session *api.Session
	user    *catalog.User

	lastQuery  string
	selectOnce string       // row to highlight after the restored page loads
	returnTo   navctl.Route // page left by back, highlighted when it shows up
	status     string
	statusErr  bool
	width      int
	height     int
}

// New builds the model, restoring saved view settings, the last page and
// the remembered session.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	e := &env{
		catalog: opts.Catalog,
		state:   opts.State,
		timeout: timeout,
		log:     log.Named("app"),
		views: views.Options{
			PageSize: opts.PageSize,
			Collator: listview.NewCollator(opts.Locale),
			Logger:   log,
		},
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.T().S().Title

	m := Model{
		env:      e,
		lyrics:   opts.Lyrics,
		similar:  opts.Similar,
		covers:   opts.Covers,
		cover:    coverart.New(opts.Images && opts.Covers != nil),
		remember: opts.RememberSession,
		keys:     keymap.Default(),
		Popups:   popupctl.New(),
		spinner:  sp,
		route:    navctl.Route{Kind: navctl.KindHome},
		history:  &navctl.History{},
		genres:   &genreSet{},
	}
	m.lists = newCollections(e)
	m.cover.SetSize(ui.CoverWidth, ui.CoverHeight)

	m.restoreSettings()
	m.restoreNavigation()
	m.restoreSession()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return startMsg{} },
		m.checkSessionCmd(),
	)
}

// Route returns the current page.
func (m Model) Route() navctl.Route {
	return m.route
}

// Session returns the logged-in session, or nil.
func (m Model) Session() *api.Session {
	return m.session
}

// setStatus shows a one-line message in the footer until the next key.
func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}
