package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/list"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
	"github.com/llehouerou/xiamiu/internal/views"
)

// collection is a list page over one entity type, erased so the model can
// hold all of them in one map.
type collection interface {
	kind() navctl.Kind
	def() pageDef
	status() listview.Status

	load() tea.Cmd
	loaded(msg collectionLoadedMsg) tea.Cmd
	genreLoaded(msg genreFilterMsg)
	applySettings(s listview.Settings)

	searchTerm() string
	setSearch(term string)
	cycleSort() string
	cycleFacet(n int) (string, error)
	filterGenre(genreID string) tea.Cmd
	currentGenre() string
	clearGenre()
	resetFilters()
	nextPage() bool
	prevPage() bool

	moveCursor(msg tea.KeyMsg)
	selectedRoute() (navctl.Route, bool)
	selectedID() string
	selectID(id string) bool

	setSize(width, height int)
	view(width int, genres *genreSet, spin string) string
	footer() string
}

// pageDef is the type-independent part of a views.Definition.
type pageDef struct {
	Name        string
	Title       string
	Sorts       []views.SortOption
	Facets      []views.FacetOption
	GenreFilter bool
}

// column is one cell of a list row.
type column[T any] struct {
	Header string
	Width  int // 0 takes the remaining room
	Cell   func(T) string
}

// listPage drives a listview.Controller for one entity type.
type listPage[T any] struct {
	env      *env
	k        navctl.Kind
	d        views.Definition[T]
	op       errmsg.Op
	ctrl     *listview.Controller[T]
	rows     list.Model[T]
	pager    paginator.Model
	columns  []column[T]
	fetch    func(ctx context.Context) ([]T, error)
	crossRef listview.CrossRefFunc // nil when the page has no genre filter
	route    func(T) navctl.Route
	log      *zap.Logger

	st      listview.Status
	err     error
	version uint64

	genreVersion uint64
	genreWanted  string // genre whose cross-reference is in flight
	restorePage  int    // page to return to once a restored genre applies
	pending      *listview.Settings
}

func newListPage[T any](
	e *env,
	k navctl.Kind,
	d views.Definition[T],
	op errmsg.Op,
	fetch func(context.Context) ([]T, error),
	crossRef listview.CrossRefFunc,
	route func(T) navctl.Route,
	columns []column[T],
) *listPage[T] {
	pager := paginator.New()
	pager.Type = paginator.Arabic
	return &listPage[T]{
		env:      e,
		k:        k,
		d:        d,
		op:       op,
		ctrl:     d.NewController(),
		rows:     list.New[T](ui.ScrollMargin),
		pager:    pager,
		columns:  columns,
		fetch:    fetch,
		crossRef: crossRef,
		route:    route,
		log:      e.log.With(zap.String("page", d.Name)),
	}
}

func (p *listPage[T]) kind() navctl.Kind { return p.k }

func (p *listPage[T]) def() pageDef {
	return pageDef{
		Name:        p.d.Name,
		Title:       p.d.Title,
		Sorts:       p.d.Sorts,
		Facets:      p.d.Facets,
		GenreFilter: p.d.GenreFilter && p.crossRef != nil,
	}
}

func (p *listPage[T]) status() listview.Status { return p.st }

// load fetches a new snapshot. Results of earlier loads are dropped.
func (p *listPage[T]) load() tea.Cmd {
	p.version = p.env.next()
	p.st = listview.StatusLoading
	p.err = nil

	kind, version, fetch := p.k, p.version, p.fetch
	ctx, cancel := p.env.ctx()
	return func() tea.Msg {
		defer cancel()
		items, err := fetch(ctx)
		return collectionLoadedMsg{Kind: kind, Version: version, Items: items, Err: err}
	}
}

func (p *listPage[T]) loaded(msg collectionLoadedMsg) tea.Cmd {
	if msg.Version != p.version {
		p.log.Debug("dropping stale collection",
			zap.Uint64("version", msg.Version), zap.Uint64("current", p.version))
		return nil
	}
	if msg.Err != nil {
		p.log.Warn("collection load failed", zap.Error(msg.Err))
		p.st = listview.StatusError
		p.err = msg.Err
		p.ctrl.SetItems(nil)
		p.refresh(true)
		return nil
	}

	items, _ := msg.Items.([]T)
	p.ctrl.SetItems(items)
	p.st = listview.StatusReady
	p.log.Debug("collection loaded", zap.Int("items", len(items)))

	var cmd tea.Cmd
	if p.pending != nil {
		s := *p.pending
		p.pending = nil
		p.ctrl.Apply(s)
		if s.GenreID != "" && p.crossRef != nil {
			p.restorePage = s.Page
			cmd = p.filterGenre(s.GenreID)
		}
	}
	p.refresh(false)
	return cmd
}

// applySettings restores saved controls once the snapshot is in.
func (p *listPage[T]) applySettings(s listview.Settings) {
	p.pending = &s
}

func (p *listPage[T]) searchTerm() string { return p.ctrl.SearchTerm() }

func (p *listPage[T]) setSearch(term string) {
	p.ctrl.SetSearchTerm(term)
	p.changed()
}

// cycleSort moves to the next sort order and returns its label.
func (p *listPage[T]) cycleSort() string {
	next := views.NextSort(p.d.Sorts, p.ctrl.SortKey())
	if err := p.ctrl.SetSortKey(next); err != nil {
		p.log.Warn("sort key rejected", zap.String("sort", string(next)), zap.Error(err))
	}
	p.changed()
	return views.SortLabel(p.d.Sorts, p.ctrl.SortKey())
}

// cycleFacet advances the n-th facet and returns a label for the status line.
func (p *listPage[T]) cycleFacet(n int) (string, error) {
	if n < 0 || n >= len(p.d.Facets) {
		return "", fmt.Errorf("%w: %d", listview.ErrUnknownFacet, n)
	}
	f := p.d.Facets[n]
	v, err := p.ctrl.CycleCategoryFilter(f.Name)
	if err != nil {
		return "", err
	}
	p.changed()
	return f.Label + ": " + v, nil
}

// filterGenre fetches the cross-reference set of genreID. The current view
// stays unfiltered until it arrives.
func (p *listPage[T]) filterGenre(genreID string) tea.Cmd {
	if p.crossRef == nil {
		return nil
	}
	p.genreVersion = p.env.next()
	p.genreWanted = genreID

	kind, version, fetch := p.k, p.genreVersion, p.crossRef
	ctx, cancel := p.env.ctx()
	return func() tea.Msg {
		defer cancel()
		ids, err := fetch(ctx, genreID)
		return genreFilterMsg{Kind: kind, Version: version, GenreID: genreID, IDs: ids, Err: err}
	}
}

func (p *listPage[T]) genreLoaded(msg genreFilterMsg) {
	if msg.Version != p.genreVersion {
		p.log.Debug("dropping stale genre filter", zap.String("genre", msg.GenreID))
		return
	}
	p.genreWanted = ""
	p.ctrl.SetGenreFilter(msg.GenreID, msg.IDs, msg.Err)
	if p.restorePage > 0 {
		p.ctrl.SetPage(p.restorePage)
		p.restorePage = 0
		p.refresh(false)
		p.save()
		return
	}
	p.changed()
}

// currentGenre is the applied genre, or the one being fetched.
func (p *listPage[T]) currentGenre() string {
	if p.genreWanted != "" {
		return p.genreWanted
	}
	return p.ctrl.GenreFilter()
}

func (p *listPage[T]) clearGenre() {
	p.genreVersion = p.env.next()
	p.genreWanted = ""
	p.restorePage = 0
	p.ctrl.ClearGenreFilter()
	p.changed()
}

// resetFilters clears search, facets and genre. The sort order is kept.
func (p *listPage[T]) resetFilters() {
	p.ctrl.SetSearchTerm("")
	for _, f := range p.d.Facets {
		_ = p.ctrl.SetCategoryFilter(f.Name, listview.All)
	}
	p.clearGenre()
}

func (p *listPage[T]) nextPage() bool {
	before := p.ctrl.View().Number
	if p.ctrl.NextPage() == before {
		return false
	}
	p.changed()
	return true
}

func (p *listPage[T]) prevPage() bool {
	before := p.ctrl.View().Number
	if p.ctrl.PrevPage() == before {
		return false
	}
	p.changed()
	return true
}

func (p *listPage[T]) moveCursor(msg tea.KeyMsg) {
	p.rows.Update(msg)
}

func (p *listPage[T]) selectedRoute() (navctl.Route, bool) {
	item, ok := p.rows.Selected()
	if !ok {
		return navctl.Route{}, false
	}
	return p.route(item), true
}

func (p *listPage[T]) selectedID() string {
	item, ok := p.rows.Selected()
	if !ok {
		return ""
	}
	return p.d.Config.ID(item)
}

func (p *listPage[T]) selectID(id string) bool {
	return p.rows.SelectFunc(func(item T) bool { return p.d.Config.ID(item) == id })
}

// changed re-derives the rows after a control change and saves the controls.
func (p *listPage[T]) changed() {
	p.refresh(true)
	p.save()
}

func (p *listPage[T]) refresh(resetCursor bool) {
	page := p.ctrl.View()
	p.rows.SetItems(page.Items)
	if resetCursor {
		p.rows.Reset()
	}
	p.pager.TotalPages = page.TotalPages
	p.pager.Page = page.Number - 1
}

func (p *listPage[T]) save() {
	if p.env.state == nil {
		return
	}
	p.env.state.SaveViewSettings(p.d.Name, p.ctrl.Settings())
}

// setSize sets the body size. Two lines go to the controls and the column
// header.
func (p *listPage[T]) setSize(width, height int) {
	p.rows.SetSize(width, max(height-2, 1))
}

func (p *listPage[T]) view(width int, genres *genreSet, spin string) string {
	s := styles.T().S()
	lines := []string{p.controls(width, genres)}

	switch p.st {
	case listview.StatusIdle, listview.StatusLoading:
		lines = append(lines, "", s.Muted.Render(spin+" Loading "+strings.ToLower(p.d.Title)+"…"))
	case listview.StatusError:
		lines = append(lines, "",
			s.Error.Render(render.Truncate(errmsg.Format(p.op, p.err), width)),
			s.Muted.Render("press r to retry"))
	default:
		if p.rows.Len() == 0 {
			lines = append(lines, "", s.Muted.Render("No "+strings.ToLower(p.d.Title)+" match the current filters."))
			break
		}
		lines = append(lines, s.Muted.Render(" "+p.row(width-1, p.headers())))
		items := p.rows.Items()
		start, end := p.rows.VisibleRange()
		for i := start; i < end; i++ {
			line := " " + p.row(width-1, p.cells(items[i]))
			if i == p.rows.SelectedIndex() {
				line = s.Cursor.Render(render.Pad(line, width))
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (p *listPage[T]) row(width int, cells []string) string {
	widths := make([]int, len(p.columns))
	for i, c := range p.columns {
		widths[i] = c.Width
	}
	return render.Columns(width, cells, widths)
}

func (p *listPage[T]) headers() []string {
	out := make([]string, len(p.columns))
	for i, c := range p.columns {
		out[i] = c.Header
	}
	return out
}

func (p *listPage[T]) cells(item T) []string {
	out := make([]string, len(p.columns))
	for i, c := range p.columns {
		out[i] = c.Cell(item)
	}
	return out
}

// controls renders the title and the active controls on one line.
func (p *listPage[T]) controls(width int, genres *genreSet) string {
	s := styles.T().S()
	parts := []string{
		s.Title.Render(p.d.Title),
		s.Muted.Render("sort ") + views.SortLabel(p.d.Sorts, p.ctrl.SortKey()),
	}
	for _, f := range p.d.Facets {
		parts = append(parts, s.Muted.Render(strings.ToLower(f.Label)+" ")+p.ctrl.CategoryFilter(f.Name))
	}
	if p.def().GenreFilter {
		switch {
		case p.genreWanted != "":
			parts = append(parts, s.Muted.Render("genre ")+genres.name(p.genreWanted)+"…")
		case p.ctrl.Degraded():
			parts = append(parts, s.Muted.Render("genre ")+
				s.Warning.Render(genres.name(p.ctrl.GenreFilter())+" (unavailable)"))
		case p.ctrl.GenreFilter() != "":
			parts = append(parts, s.Muted.Render("genre ")+genres.name(p.ctrl.GenreFilter()))
		default:
			parts = append(parts, s.Muted.Render("genre ")+listview.All)
		}
	}
	if term := p.ctrl.SearchTerm(); term != "" {
		parts = append(parts, s.Muted.Render("search ")+fmt.Sprintf("%q", term))
	}
	line := strings.Join(parts, s.Subtle.Render(" · "))
	return ansi.Truncate(line, width, render.Ellipsis)
}

// footer renders the page indicator and the match count.
func (p *listPage[T]) footer() string {
	if p.st != listview.StatusReady {
		return ""
	}
	page := p.ctrl.View()
	return p.pager.View() + " · " + render.Count(page.Total) + " " + strings.ToLower(p.d.Title)
}
