package app

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/list"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
)

// Section keys, in display order.
const (
	secNotice      = "notice"
	secDescription = "description"
	secLyrics      = "lyrics"
	secFrom        = "from"
	secFeatured    = "featured"
	secNewest      = "newest"
	secTop         = "top"
	secArtists     = "artists"
	secAlbums      = "albums"
	secSongs       = "songs"
	secCollections = "collections"
	secSimilar     = "similar"
	secComments    = "comments"
)

var sectionOrder = []string{
	secNotice, secDescription, secLyrics, secFrom, secFeatured, secNewest, secTop,
	secArtists, secAlbums, secSongs, secCollections, secSimilar, secComments,
}

type itemKind int

const (
	itemHeading itemKind = iota
	itemText
	itemLink
	itemComment
	itemBlank
)

// detailItem is one entry of a section. Text and comment entries are
// wrapped into several rows when the page is laid out.
type detailItem struct {
	kind    itemKind
	text    string
	right   string // right-aligned detail (rating, year, score)
	route   navctl.Route
	comment *catalog.Comment
	meta    bool // first row of a comment
}

type section struct {
	key   string
	title string
	items []detailItem
}

// detailPage is any page that is not a list view: home, search, my music
// and the entity pages. It is a stack of titled sections under a header
// block, with an optional cover on the right.
type detailPage struct {
	route   navctl.Route
	version uint64
	status  listview.Status
	err     error
	op      errmsg.Op

	title    string
	subtitle string
	info     []string

	covers         bool // pictures can be drawn
	coverURL       string
	coverRequested string

	// Comment target of the page, "" when comments are not offered.
	target   catalog.Target
	targetID string

	// Loaded entities, read by the secondary loads and the comment flow.
	artist   catalog.Artist
	album    catalog.Album
	song     catalog.Song
	songs    []catalog.Song
	ratings  map[string]catalog.SongRating
	user     catalog.User
	comments []catalog.Comment

	// groupComments splits comments by target (user pages).
	groupComments bool

	sections []section
	rows     list.Model[detailItem]
	width    int
	height   int
}

func newDetailPage(r navctl.Route, version uint64, op errmsg.Op) *detailPage {
	return &detailPage{
		route:   r,
		version: version,
		status:  listview.StatusLoading,
		op:      op,
		rows:    list.New[detailItem](ui.ScrollMargin),
	}
}

// setSection replaces a section. An empty section is removed.
func (p *detailPage) setSection(key, title string, items []detailItem) {
	p.sections = slices.DeleteFunc(p.sections, func(s section) bool { return s.key == key })
	if len(items) > 0 {
		p.sections = append(p.sections, section{key: key, title: title, items: items})
		slices.SortStableFunc(p.sections, func(a, b section) int {
			return sectionRank(a.key) - sectionRank(b.key)
		})
	}
	p.layout()
}

func (p *detailPage) section(key string) (section, bool) {
	for _, s := range p.sections {
		if s.key == key {
			return s, true
		}
	}
	return section{}, false
}

func sectionRank(key string) int {
	if i := slices.Index(sectionOrder, key); i >= 0 {
		return i
	}
	return len(sectionOrder)
}

// setComments replaces the comments and rebuilds their sections.
func (p *detailPage) setComments(comments []catalog.Comment) {
	p.comments = comments
	if !p.groupComments {
		p.setSection(secComments, "Comments", commentItems(comments, false))
		return
	}
	var items []detailItem
	for _, t := range []catalog.Target{catalog.TargetArtist, catalog.TargetAlbum, catalog.TargetSong} {
		var group []catalog.Comment
		for _, c := range comments {
			if c.Target() == t {
				group = append(group, c)
			}
		}
		if len(group) == 0 {
			continue
		}
		items = append(items, detailItem{kind: itemText, text: targetLabel(t)})
		items = append(items, commentItems(group, true)...)
	}
	p.setSection(secComments, "Comments", items)
}

// addComment shows a newly posted comment first.
func (p *detailPage) addComment(c catalog.Comment) {
	p.setComments(append([]catalog.Comment{c}, p.comments...))
}

// removeComment drops a deleted comment.
func (p *detailPage) removeComment(id int) {
	p.setComments(slices.DeleteFunc(slices.Clone(p.comments), func(c catalog.Comment) bool { return c.ID == id }))
}

func commentItems(comments []catalog.Comment, linked bool) []detailItem {
	items := make([]detailItem, 0, len(comments))
	for i := range comments {
		item := detailItem{kind: itemComment, comment: &comments[i], text: comments[i].Comment}
		if linked {
			item.route = commentRoute(comments[i])
		}
		items = append(items, item)
	}
	return items
}

func commentRoute(c catalog.Comment) navctl.Route {
	switch c.Target() {
	case catalog.TargetSong:
		return navctl.Route{Kind: navctl.KindSong, ID: c.SongID}
	case catalog.TargetAlbum:
		return navctl.Route{Kind: navctl.KindAlbum, ID: c.AlbumID}
	default:
		return navctl.Route{Kind: navctl.KindArtist, ID: c.ArtistID}
	}
}

func targetLabel(t catalog.Target) string {
	switch t {
	case catalog.TargetAlbum:
		return "On albums"
	case catalog.TargetSong:
		return "On songs"
	default:
		return "On artists"
	}
}

// selectedComment returns the comment under the cursor.
func (p *detailPage) selectedComment() (*catalog.Comment, bool) {
	item, ok := p.rows.Selected()
	if !ok || item.kind != itemComment {
		return nil, false
	}
	return item.comment, true
}

// selectedRoute returns the link under the cursor.
func (p *detailPage) selectedRoute() (navctl.Route, bool) {
	item, ok := p.rows.Selected()
	if !ok || item.route.Kind == "" {
		return navctl.Route{}, false
	}
	return item.route, true
}

// selectRoute moves the cursor to the first row linking to r.
func (p *detailPage) selectRoute(r navctl.Route) bool {
	return p.rows.SelectFunc(func(item detailItem) bool { return item.route == r })
}

func (p *detailPage) setSize(width, height int) {
	p.width, p.height = width, height
	p.layout()
}

// showsCover reports whether the header reserves room for a picture.
func (p *detailPage) showsCover() bool {
	return p.covers && p.coverURL != ""
}

// headerLines is the height of the title block and its separator.
func (p *detailPage) headerLines() int {
	n := 2 + len(p.info)
	if p.subtitle != "" {
		n++
	}
	if p.showsCover() {
		n = max(n, ui.CoverHeight+1)
	}
	return n
}

// layout flattens the sections into rows for the current width.
func (p *detailPage) layout() {
	width := max(p.width-4, 10)
	var rows []detailItem
	for i, s := range p.sections {
		if i > 0 {
			rows = append(rows, detailItem{kind: itemBlank})
		}
		rows = append(rows, detailItem{kind: itemHeading, text: s.title})
		for _, item := range s.items {
			rows = append(rows, expand(item, width)...)
		}
	}
	prev, had := p.rows.Selected()
	p.rows.SetSize(p.width, max(p.height-p.headerLines(), 1))
	p.rows.SetItems(rows)
	if had && prev.route.Kind != "" {
		p.selectRoute(prev.route)
	}
}

func expand(item detailItem, width int) []detailItem {
	switch item.kind {
	case itemText:
		lines := render.Wrap(item.text, width)
		out := make([]detailItem, 0, len(lines))
		for _, l := range lines {
			row := item
			row.text = l
			out = append(out, row)
		}
		return out
	case itemComment:
		out := []detailItem{{kind: itemComment, comment: item.comment, route: item.route, meta: true}}
		for _, l := range render.Wrap(item.text, max(width-2, 8)) {
			out = append(out, detailItem{kind: itemComment, comment: item.comment, route: item.route, text: l})
		}
		return out
	}
	return []detailItem{item}
}

// view renders the page body. me is the logged-in user id, 0 when logged
// out. cover is the picture area.
func (p *detailPage) view(width, me int, cover, spin string) string {
	s := styles.T().S()

	switch p.status {
	case listview.StatusIdle, listview.StatusLoading:
		return s.Muted.Render(spin + " Loading…")
	case listview.StatusError:
		return s.Error.Render(render.Truncate(errmsg.FormatWith(p.op, p.route.ID, p.err), width)) + "\n" +
			s.Muted.Render("press r to retry, esc to go back")
	}

	if !p.showsCover() {
		cover = ""
	}
	lines := []string{p.renderHeader(width, cover)}
	items := p.rows.Items()
	start, end := p.rows.VisibleRange()
	for i := start; i < end; i++ {
		line := p.renderRow(items[i], width, me)
		if i == p.rows.SelectedIndex() && items[i].kind != itemHeading && items[i].kind != itemBlank {
			line = s.Cursor.Render(render.Pad(ansi.Strip(line), width))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *detailPage) renderHeader(width int, cover string) string {
	s := styles.T().S()
	textWidth := width
	if cover != "" {
		textWidth = max(width-ui.CoverWidth-2, 10)
	}

	lines := []string{s.Title.Render(render.Truncate(p.title, textWidth))}
	if p.subtitle != "" {
		lines = append(lines, s.Muted.Render(render.Truncate(p.subtitle, textWidth)))
	}
	for _, l := range p.info {
		lines = append(lines, render.Truncate(l, textWidth))
	}
	block := strings.Join(lines, "\n")
	if cover != "" {
		block = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(textWidth+2).Render(block), cover)
	}
	return block + "\n" + s.Subtle.Render(render.Separator(width))
}

func (p *detailPage) renderRow(item detailItem, width, me int) string {
	s := styles.T().S()
	switch item.kind {
	case itemHeading:
		return s.Heading.Render(render.Truncate(item.text, width))
	case itemBlank:
		return ""
	case itemText:
		return "  " + item.text
	case itemLink:
		if item.right == "" {
			return "  " + render.Truncate(item.text, width-2)
		}
		rw := lipgloss.Width(item.right)
		return "  " + render.Row(render.Truncate(item.text, max(width-rw-5, 4)), s.Stars.Render(item.right), width-2)
	case itemComment:
		if !item.meta {
			return "    " + item.text
		}
		return "  " + commentMeta(*item.comment, me)
	}
	return ""
}

// commentMeta renders the first line of a comment: rating, author, age and
// likes.
func commentMeta(c catalog.Comment, me int) string {
	s := styles.T().S()
	var parts []string
	if c.Star > 0 {
		parts = append(parts, s.Stars.Render(render.Stars(c.Star)))
	}
	author := "user #" + strconv.Itoa(c.UserID)
	if me != 0 && c.UserID == me {
		author = s.Title.Render("you")
	}
	parts = append(parts, author)
	if t, precision := catalog.ParseDate(c.ReviewDate); precision == catalog.PrecisionDay {
		parts = append(parts, s.Muted.Render(render.Ago(t)))
	} else if c.ReviewDate != "" {
		parts = append(parts, s.Muted.Render(c.ReviewDate))
	}
	if c.NumLike > 0 {
		parts = append(parts, s.Muted.Render(render.Count(c.NumLike)+" likes"))
	}
	return strings.Join(parts, s.Subtle.Render(" · "))
}
