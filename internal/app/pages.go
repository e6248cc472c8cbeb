package app

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/views"
)

// newCollections builds the four list pages.
func newCollections(e *env) map[navctl.Kind]collection {
	o, c := e.views, e.catalog

	return map[navctl.Kind]collection{
		navctl.KindArtists: newListPage(e, navctl.KindArtists, views.Artists(o), errmsg.OpArtistsLoad,
			c.Artists, views.ArtistCrossRef(c),
			func(a catalog.Artist) navctl.Route { return navctl.Route{Kind: navctl.KindArtist, ID: a.ArtistID} },
			[]column[catalog.Artist]{
				{Header: "Name", Cell: func(a catalog.Artist) string { return a.Name }},
				{Header: "Region", Width: 16, Cell: func(a catalog.Artist) string { return a.Region }},
			}),
		navctl.KindAlbums: newListPage(e, navctl.KindAlbums, views.Albums(o), errmsg.OpAlbumsLoad,
			c.Albums, views.AlbumCrossRef(c),
			func(a catalog.Album) navctl.Route { return navctl.Route{Kind: navctl.KindAlbum, ID: a.AlbumID} },
			[]column[catalog.Album]{
				{Header: "Name", Cell: func(a catalog.Album) string { return a.Name }},
				{Header: "Released", Width: 10, Cell: func(a catalog.Album) string { return a.ReleaseDate }},
				{Header: "Category", Width: 10, Cell: func(a catalog.Album) string { return a.Category }},
				{Header: "Language", Width: 10, Cell: func(a catalog.Album) string { return a.Language }},
				{Header: "Rating", Width: 6, Cell: func(a catalog.Album) string { return render.Stars(a.Star) }},
			}),
		navctl.KindSongs: newListPage(e, navctl.KindSongs, views.Songs(o), errmsg.OpSongsLoad,
			c.Songs, nil,
			func(s catalog.Song) navctl.Route { return navctl.Route{Kind: navctl.KindSong, ID: s.SongID} },
			[]column[catalog.Song]{
				{Header: "Name", Cell: func(s catalog.Song) string { return s.Name }},
				{Header: "Rating", Width: 6, Cell: func(s catalog.Song) string { return render.Stars(s.Star) }},
			}),
		navctl.KindGenres: newListPage(e, navctl.KindGenres, views.Genres(o), errmsg.OpGenresLoad,
			c.Genres, nil,
			func(g catalog.Genre) navctl.Route { return navctl.Route{Kind: navctl.KindGenre, ID: g.ID()} },
			[]column[catalog.Genre]{
				{Header: "Name", Width: 24, Cell: func(g catalog.Genre) string { return g.Name }},
				{Header: "About", Cell: func(g catalog.Genre) string { return g.Info }},
			}),
	}
}

// genreSet holds the genres offered by list genre filters. They are fetched
// the first time a filter is cycled.
type genreSet struct {
	items   []catalog.Genre
	status  listview.Status
	wanted  bool        // a restored filter needs the names
	waiting navctl.Kind // page that asked to cycle while the genres loaded
}

// load fetches the genres unless already loading or loaded.
func (g *genreSet) load(e *env) tea.Cmd {
	if g.status == listview.StatusLoading || g.status == listview.StatusReady {
		return nil
	}
	g.status = listview.StatusLoading
	fetch := e.catalog.Genres
	ctx, cancel := e.ctx()
	return func() tea.Msg {
		defer cancel()
		genres, err := fetch(ctx)
		return genresLoadedMsg{Genres: genres, Err: err}
	}
}

func (g *genreSet) loaded(msg genresLoadedMsg) {
	if msg.Err != nil {
		g.status = listview.StatusError
		return
	}
	g.items = msg.Genres
	g.status = listview.StatusReady
}

// next returns the genre after current, in fetch order. ok is false past
// the last genre, which means the filter should be cleared.
func (g *genreSet) next(current string) (catalog.Genre, bool) {
	if len(g.items) == 0 {
		return catalog.Genre{}, false
	}
	if current == "" {
		return g.items[0], true
	}
	for i, genre := range g.items {
		if genre.ID() == current {
			if i+1 < len(g.items) {
				return g.items[i+1], true
			}
			return catalog.Genre{}, false
		}
	}
	return g.items[0], true
}

// name returns the display name of a genre id.
func (g *genreSet) name(id string) string {
	for _, genre := range g.items {
		if genre.ID() == id {
			return genre.Name
		}
	}
	if _, err := strconv.Atoi(id); err == nil {
		return "#" + id
	}
	return id
}

