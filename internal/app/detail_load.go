package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/errmsg"
	"github.com/llehouerou/xiamiu/internal/lastfm"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/lyrics"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/views"
)

// loadFunc fetches data for a detail page and returns how to apply it.
type loadFunc func(ctx context.Context) (func(*detailPage), error)

// errInvalidID is returned for routes whose id cannot address an entity.
var errInvalidID = errors.New("invalid id")

func detailOp(k navctl.Kind) errmsg.Op {
	switch k {
	case navctl.KindHome:
		return errmsg.OpHomeLoad
	case navctl.KindArtist:
		return errmsg.OpArtistLoad
	case navctl.KindAlbum:
		return errmsg.OpAlbumLoad
	case navctl.KindSong, navctl.KindStars:
		return errmsg.OpSongLoad
	case navctl.KindGenre:
		return errmsg.OpGenreLoad
	case navctl.KindSearch:
		return errmsg.OpSearch
	}
	return errmsg.OpUserLoad
}

// openDetail replaces the current detail page with one for r and starts
// its primary load.
func (m *Model) openDetail(r navctl.Route) tea.Cmd {
	p := newDetailPage(r, m.env.next(), detailOp(r.Kind))
	p.covers = m.cover.Enabled()
	p.setSize(m.bodySize())
	m.detail = p
	return m.loadDetail(p)
}

// primary runs the main fetch of a page. Its failure puts the page in the
// error state.
func (m *Model) primary(p *detailPage, load loadFunc) tea.Cmd {
	version, op := p.version, p.op
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		apply, err := load(ctx)
		return detailLoadedMsg{Version: version, Op: op, Apply: apply, Err: err}
	}
}

// secondary runs a fetch filling one part of a loaded page.
func (m *Model) secondary(p *detailPage, op errmsg.Op, load loadFunc) tea.Cmd {
	version := p.version
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		apply, err := load(ctx)
		return sectionMsg{Version: version, Op: op, Apply: apply, Err: err}
	}
}

// ready shows a page that needs no fetch.
func (p *detailPage) ready(title, notice string) {
	p.status = listview.StatusReady
	p.title = title
	p.setSection(secNotice, "", []detailItem{{kind: itemText, text: notice}})
}

func (m *Model) loadDetail(p *detailPage) tea.Cmd {
	c, log := m.env.catalog, m.env.log
	id := p.route.ID

	switch p.route.Kind {
	case navctl.KindHome:
		o := m.env.views
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			home, err := views.LoadHome(ctx, c, o)
			if err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.title = "Home"
				p.subtitle = "Highlights from the catalog"
				p.setSection(secFeatured, "Featured artists", artistItems(home.FeaturedArtists))
				p.setSection(secNewest, "Newest albums", albumItems(home.NewestAlbums))
				p.setSection(secTop, "Top rated songs", songItems(home.TopSongs, nil))
			}, nil
		})

	case navctl.KindSearch:
		if strings.TrimSpace(id) == "" {
			p.ready("Search", "Press / to search artists, albums and songs.")
			return nil
		}
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			res, err := c.Search(ctx, id)
			if err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.title = "Search"
				p.subtitle = fmt.Sprintf("Results for %q", id)
				if res.Empty() {
					p.setSection(secNotice, "", []detailItem{{kind: itemText, text: "Nothing matches."}})
					return
				}
				p.setSection(secArtists, titleCount("Artists", len(res.Artists)), artistItems(res.Artists))
				p.setSection(secAlbums, titleCount("Albums", len(res.Albums)), albumItems(res.Albums))
				p.setSection(secSongs, titleCount("Songs", len(res.Songs)), songItems(res.Songs, nil))
			}, nil
		})

	case navctl.KindMyMusic:
		sess := m.session
		if !sess.Valid() {
			p.ready("My music", "Log in with L to see your profile and comments.")
			return nil
		}
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			u, err := c.CurrentUser(ctx, sess)
			if err != nil {
				return nil, err
			}
			return applyUser(u), nil
		})

	case navctl.KindUser:
		uid, err := strconv.Atoi(id)
		if err != nil {
			return m.primary(p, func(context.Context) (func(*detailPage), error) {
				return nil, fmt.Errorf("%w: user %q", errInvalidID, id)
			})
		}
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			u, err := c.User(ctx, uid)
			if err != nil {
				return nil, err
			}
			return applyUser(u), nil
		})

	case navctl.KindArtist:
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			var (
				artist catalog.Artist
				albums []catalog.Album
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				artist, err = c.Artist(gctx, id)
				return err
			})
			g.Go(func() (err error) {
				albums, err = c.ArtistAlbums(gctx, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.artist = artist
				p.title = artist.Name
				p.subtitle = artist.Region
				p.info = []string{titleCount("Albums", len(albums))}
				p.target, p.targetID = catalog.TargetArtist, artist.ArtistID
				p.setSection(secAlbums, "Albums", albumItems(albums))
			}, nil
		})

	case navctl.KindAlbum:
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			var (
				album catalog.Album
				songs []catalog.Song
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				album, err = c.Album(gctx, id)
				return err
			})
			g.Go(func() (err error) {
				songs, err = c.AlbumSongs(gctx, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			artist := artistOrID(ctx, c, log, album.ArtistID)
			return func(p *detailPage) {
				p.album, p.artist, p.songs = album, artist, songs
				p.title = album.Name
				p.subtitle = "by " + artist.Name
				p.info = albumInfo(album)
				p.coverURL = album.PicAddress
				p.target, p.targetID = catalog.TargetAlbum, album.AlbumID
				p.setSection(secFrom, "Artist", []detailItem{artistLink(artist)})
				p.setSection(secSongs, titleCount("Songs", len(songs)), songItems(songs, nil))
			}, nil
		})

	case navctl.KindSong:
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			song, err := c.Song(ctx, id)
			if err != nil {
				return nil, err
			}
			album, err := c.Album(ctx, song.AlbumID)
			if err != nil {
				log.Warn("song album unavailable", zap.String("album", song.AlbumID), zap.Error(err))
				album = catalog.Album{AlbumID: song.AlbumID, Name: song.AlbumID}
			}
			artist := artistOrID(ctx, c, log, album.ArtistID)
			return func(p *detailPage) {
				p.song, p.album, p.artist = song, album, artist
				p.title = song.Name
				p.subtitle = album.Name + " · " + artist.Name
				if song.Star > 0 {
					p.info = []string{"Rating " + render.Stars(song.Star)}
				}
				p.coverURL = album.PicAddress
				p.target, p.targetID = catalog.TargetSong, song.SongID
				items := []detailItem{{kind: itemLink, text: "Album: " + album.Name,
					route: navctl.Route{Kind: navctl.KindAlbum, ID: album.AlbumID}}}
				if artist.ArtistID != "" {
					link := artistLink(artist)
					link.text = "Artist: " + artist.Name
					items = append(items, link)
				}
				p.setSection(secFrom, "From", items)
			}, nil
		})

	case navctl.KindGenre:
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			var (
				genre   catalog.Genre
				artists []catalog.Artist
				albums  []catalog.Album
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				genre, err = c.Genre(gctx, id)
				return err
			})
			g.Go(func() (err error) {
				artists, err = c.GenreArtists(gctx, id)
				return err
			})
			g.Go(func() (err error) {
				albums, err = c.GenreAlbums(gctx, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.title = genre.Name
				p.subtitle = "Genre"
				p.info = []string{titleCount("Artists", len(artists)) + " · " + titleCount("Albums", len(albums))}
				if genre.Info != "" {
					p.setSection(secDescription, "About", []detailItem{{kind: itemText, text: genre.Info}})
				}
				p.setSection(secArtists, "Artists", artistItems(artists))
				p.setSection(secAlbums, "Albums", albumItems(albums))
			}, nil
		})

	case navctl.KindStars:
		stars := p.route.Stars
		return m.primary(p, func(ctx context.Context) (func(*detailPage), error) {
			var (
				artist catalog.Artist
				songs  []catalog.Song
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				artist, err = c.Artist(gctx, id)
				return err
			})
			g.Go(func() (err error) {
				songs, err = views.StarCollection(gctx, c, id, stars)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.artist, p.songs = artist, songs
				p.title = render.Stars(stars) + " songs"
				p.subtitle = "by " + artist.Name
				p.setSection(secFrom, "Artist", []detailItem{artistLink(artist)})
				if len(songs) == 0 {
					p.setSection(secNotice, "", []detailItem{{kind: itemText, text: "No songs with this rating."}})
					return
				}
				p.setSection(secSongs, titleCount("Songs", len(songs)), songItems(songs, nil))
			}, nil
		})
	}

	p.status = listview.StatusError
	p.err = fmt.Errorf("%w: unknown page %q", errInvalidID, p.route.Kind)
	return nil
}

// artistOrID fetches an artist, falling back to a bare record so the page
// still renders when only the artist lookup fails.
func artistOrID(ctx context.Context, c Catalog, log *zap.Logger, id string) catalog.Artist {
	if id == "" {
		return catalog.Artist{}
	}
	a, err := c.Artist(ctx, id)
	if err != nil {
		log.Warn("artist unavailable", zap.String("artist", id), zap.Error(err))
		return catalog.Artist{ArtistID: id, Name: id}
	}
	return a
}

// secondaryLoads starts the fetches filling the rest of a loaded page.
func (m *Model) secondaryLoads(p *detailPage) tea.Cmd {
	c := m.env.catalog
	var cmds []tea.Cmd

	switch p.route.Kind {
	case navctl.KindArtist:
		artist := p.artist
		cmds = append(cmds,
			m.secondary(p, errmsg.OpMetaLoad, func(ctx context.Context) (func(*detailPage), error) {
				meta, err := c.ArtistMeta(ctx, artist.ArtistID)
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) {
					p.coverURL = meta.PicAddress
					if meta.Info != "" {
						p.setSection(secDescription, "Biography", []detailItem{{kind: itemText, text: meta.Info}})
					}
				}, nil
			}),
			m.secondary(p, errmsg.OpSongsLoad, func(ctx context.Context) (func(*detailPage), error) {
				songs, err := views.ArtistSongs(ctx, c, artist.ArtistID)
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) {
					p.setSection(secCollections, "Collections by rating", collectionItems(artist.ArtistID, songs))
				}, nil
			}),
		)
		if m.similar != nil {
			cmds = append(cmds, m.similarCmd(p))
		}

	case navctl.KindAlbum:
		album := p.album
		if album.PicAddress == "" {
			cmds = append(cmds, m.secondary(p, errmsg.OpMetaLoad, func(ctx context.Context) (func(*detailPage), error) {
				meta, err := c.AlbumMeta(ctx, album.AlbumID)
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) {
					p.coverURL = meta.PicAddress
					if meta.Info != "" {
						p.setSection(secDescription, "About", []detailItem{{kind: itemText, text: meta.Info}})
					}
				}, nil
			}))
		}
		cmds = append(cmds,
			m.secondary(p, errmsg.OpRatingLoad, func(ctx context.Context) (func(*detailPage), error) {
				r, err := c.AlbumRating(ctx, album.AlbumID)
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) {
					p.info = append(p.info, "Listeners "+render.Rating(r.Average, r.Count))
					p.layout()
				}, nil
			}),
			m.secondary(p, errmsg.OpRatingLoad, func(ctx context.Context) (func(*detailPage), error) {
				ratings, err := c.AlbumSongsRating(ctx, album.AlbumID)
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) {
					p.ratings = make(map[string]catalog.SongRating, len(ratings))
					for _, r := range ratings {
						p.ratings[r.SongID] = r
					}
					p.setSection(secSongs, titleCount("Songs", len(p.songs)), songItems(p.songs, p.ratings))
				}, nil
			}),
		)

	case navctl.KindSong:
		song, album, artist := p.song, p.album, p.artist
		if m.lyrics != nil {
			src := m.lyrics
			cmds = append(cmds, m.secondary(p, errmsg.OpLyricsLoad, func(ctx context.Context) (func(*detailPage), error) {
				res := src.Fetch(ctx, lyrics.Track{
					SongID: song.SongID,
					Artist: artist.Name,
					Title:  song.Name,
					Album:  album.Name,
				})
				if res.Err != nil {
					return nil, res.Err
				}
				return func(p *detailPage) {
					if res.Lyrics == nil || res.Lyrics.Empty() {
						p.setSection(secLyrics, "Lyrics", []detailItem{{kind: itemText, text: "No lyrics found."}})
						return
					}
					p.setSection(secLyrics, "Lyrics", []detailItem{{kind: itemText, text: strings.Join(res.Lyrics.Text(), "\n")}})
				}, nil
			}))
		}
		cmds = append(cmds, m.secondary(p, errmsg.OpRatingLoad, func(ctx context.Context) (func(*detailPage), error) {
			r, err := c.SongRating(ctx, song.SongID)
			if err != nil {
				return nil, err
			}
			return func(p *detailPage) {
				p.info = append(p.info, "Listeners "+render.Rating(r.Average, r.Count))
				p.layout()
			}, nil
		}))
		if album.PicAddress == "" && album.AlbumID != "" {
			cmds = append(cmds, m.secondary(p, errmsg.OpCoverLoad, func(ctx context.Context) (func(*detailPage), error) {
				covers, err := c.AlbumCovers(ctx, []string{album.AlbumID})
				if err != nil {
					return nil, err
				}
				return func(p *detailPage) { p.coverURL = covers[album.AlbumID] }, nil
			}))
		}

	case navctl.KindUser, navctl.KindMyMusic:
		uid := p.user.ID
		cmds = append(cmds, m.secondary(p, errmsg.OpCommentsLoad, func(ctx context.Context) (func(*detailPage), error) {
			targets := []catalog.Target{catalog.TargetArtist, catalog.TargetAlbum, catalog.TargetSong}
			results := make([][]catalog.Comment, len(targets))
			g, gctx := errgroup.WithContext(ctx)
			for i, t := range targets {
				g.Go(func() (err error) {
					results[i], err = c.UserComments(gctx, uid, t)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
			var all []catalog.Comment
			for _, r := range results {
				all = append(all, r...)
			}
			return func(p *detailPage) { p.setComments(all) }, nil
		}))
	}

	if p.target != "" {
		cmds = append(cmds, m.commentsCmd(p))
	}
	return tea.Batch(cmds...)
}

// commentsCmd fetches the comments of the page entity.
func (m *Model) commentsCmd(p *detailPage) tea.Cmd {
	c := m.env.catalog
	target, id := p.target, p.targetID
	return m.secondary(p, errmsg.OpCommentsLoad, func(ctx context.Context) (func(*detailPage), error) {
		comments, err := c.Comments(ctx, target, id)
		if err != nil {
			return nil, err
		}
		return func(p *detailPage) { p.setComments(comments) }, nil
	})
}

// similarCmd looks the artist up on Last.fm and marks the matches present
// in the catalog.
func (m *Model) similarCmd(p *detailPage) tea.Cmd {
	c, client, log := m.env.catalog, m.similar, m.env.log
	artist, version := p.artist, p.version
	ctx, cancel := m.env.ctx()
	return func() tea.Msg {
		defer cancel()
		known, err := c.Artists(ctx)
		if err != nil {
			log.Warn("artist collection unavailable for similar artists", zap.Error(err))
		}
		return lastfm.FetchSimilarCmd(lastfm.SimilarParams{
			Client:   client,
			ArtistID: artist.ArtistID,
			Name:     artist.Name,
			Version:  version,
			Catalog:  known,
		})()
	}
}

func similarItems(items []lastfm.SimilarItem) []detailItem {
	out := make([]detailItem, 0, len(items))
	for _, s := range items {
		item := detailItem{kind: itemLink, text: s.Name, right: strconv.Itoa(s.Percent()) + "%"}
		if s.InCatalog() {
			item.route = navctl.Route{Kind: navctl.KindArtist, ID: s.ArtistID}
		} else {
			item.text += " (not in catalog)"
		}
		out = append(out, item)
	}
	return out
}

func applyUser(u catalog.User) func(*detailPage) {
	return func(p *detailPage) {
		p.user = u
		p.title = u.UserName
		p.subtitle = "Listener #" + strconv.Itoa(u.ID)
		p.info = userInfo(u)
		p.groupComments = true
	}
}

func userInfo(u catalog.User) []string {
	var facts []string
	if u.Location != "" {
		facts = append(facts, u.Location)
	}
	if u.Age > 0 {
		facts = append(facts, strconv.Itoa(u.Age))
	}
	if u.Gender != "" {
		facts = append(facts, u.Gender)
	}
	if u.Constellation != "" {
		facts = append(facts, u.Constellation)
	}
	var info []string
	if len(facts) > 0 {
		info = append(info, strings.Join(facts, " · "))
	}
	plays := render.Count(u.PlayCount) + " plays"
	if t, precision := catalog.ParseDate(u.JoinTime); precision != catalog.PrecisionNone {
		plays += " · joined " + render.Ago(t)
	}
	return append(info, plays)
}

func albumInfo(a catalog.Album) []string {
	var info []string
	if a.ReleaseDate != "" {
		info = append(info, "Released "+a.ReleaseDate)
	}
	var kind []string
	for _, v := range []string{a.Category, a.Language, a.RecordLabel} {
		if v != "" {
			kind = append(kind, v)
		}
	}
	if len(kind) > 0 {
		info = append(info, strings.Join(kind, " · "))
	}
	if a.Star > 0 {
		info = append(info, "Rating "+render.Stars(a.Star))
	}
	return info
}

func titleCount(title string, n int) string {
	return title + " (" + render.Count(n) + ")"
}

func artistLink(a catalog.Artist) detailItem {
	return detailItem{
		kind:  itemLink,
		text:  a.Name,
		right: a.Region,
		route: navctl.Route{Kind: navctl.KindArtist, ID: a.ArtistID},
	}
}

func artistItems(artists []catalog.Artist) []detailItem {
	out := make([]detailItem, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistLink(a))
	}
	return out
}

func albumItems(albums []catalog.Album) []detailItem {
	out := make([]detailItem, 0, len(albums))
	for _, a := range albums {
		right := render.Stars(a.Star)
		if y := a.Year(); y > 0 {
			right = strings.TrimSpace(strconv.Itoa(y) + "  " + right)
		}
		out = append(out, detailItem{
			kind:  itemLink,
			text:  a.Name,
			right: right,
			route: navctl.Route{Kind: navctl.KindAlbum, ID: a.AlbumID},
		})
	}
	return out
}

// songItems lists songs with their rating, or the listeners' average when
// ratings is set.
func songItems(songs []catalog.Song, ratings map[string]catalog.SongRating) []detailItem {
	out := make([]detailItem, 0, len(songs))
	for _, s := range songs {
		right := render.Stars(s.Star)
		if r, ok := ratings[s.SongID]; ok && r.Count > 0 {
			right = render.Rating(r.Average, r.Count)
		}
		out = append(out, detailItem{
			kind:  itemLink,
			text:  s.Name,
			right: right,
			route: navctl.Route{Kind: navctl.KindSong, ID: s.SongID},
		})
	}
	return out
}

// collectionItems links to the star collections that have songs.
func collectionItems(artistID string, songs []catalog.Song) []detailItem {
	groups := views.GroupByStars(songs)
	var out []detailItem
	for _, n := range groups.Available() {
		out = append(out, detailItem{
			kind:  itemLink,
			text:  render.Stars(n),
			right: titleCount("songs", len(groups.Stars(n))),
			route: navctl.Route{Kind: navctl.KindStars, ID: artistID, Stars: n},
		})
	}
	return out
}
