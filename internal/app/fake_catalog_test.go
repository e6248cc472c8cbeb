package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/catalog"
)

var errNotFound = errors.New("not found")

// fakeCatalog serves fixed records. Setting errs[method] makes that method
// fail.
type fakeCatalog struct {
	mu sync.Mutex

	artists  []catalog.Artist
	albums   []catalog.Album
	songs    []catalog.Song
	genres   []catalog.Genre
	genreOf  map[string][]string // genre id -> artist and album ids
	comments []catalog.Comment
	users    map[int]catalog.User
	password string

	errs   map[string]error
	calls  map[string]int
	nextID int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		artists: []catalog.Artist{
			{ArtistID: "a1", Name: "Cui Jian", Region: "Beijing"},
			{ArtistID: "a2", Name: "Dou Wei", Region: "Beijing"},
			{ArtistID: "a3", Name: "Faye Wong", Region: "Hong Kong"},
		},
		albums: []catalog.Album{
			{AlbumID: "b1", ArtistID: "a1", Name: "Rock 'n' Roll on the New Long March", ReleaseDate: "1989-01-01", Category: "LP", Language: "Mandarin", Star: 5},
			{AlbumID: "b2", ArtistID: "a2", Name: "Black Dream", ReleaseDate: "1994-06-01", Category: "LP", Language: "Mandarin", Star: 4},
			{AlbumID: "b3", ArtistID: "a3", Name: "Fu Zao", ReleaseDate: "1996-06-01", Category: "LP", Language: "Cantonese", Star: 3},
		},
		songs: []catalog.Song{
			{SongID: "s1", AlbumID: "b1", Name: "Nothing to My Name", Star: 5},
			{SongID: "s2", AlbumID: "b1", Name: "Rock 'n' Roll on the New Long March", Star: 4},
			{SongID: "s3", AlbumID: "b2", Name: "Black Dream", Star: 4},
			{SongID: "s4", AlbumID: "b3", Name: "Fu Zao", Star: 3},
		},
		genres: []catalog.Genre{
			{GenreID: 1, Name: "Rock", Info: "Loud guitars"},
			{GenreID: 2, Name: "Pop"},
		},
		genreOf: map[string][]string{
			"1": {"a1", "a2", "b1", "b2"},
			"2": {"a3", "b3"},
		},
		users: map[int]catalog.User{
			7: {ID: 7, UserName: "listener", Location: "Shanghai", PlayCount: 1200},
			8: {ID: 8, UserName: "other"},
		},
		password: "secret",
		errs:     map[string]error{},
		calls:    map[string]int{},
		nextID:   100,
	}
}

func (f *fakeCatalog) fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func (f *fakeCatalog) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeCatalog) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeCatalog) Artists(context.Context) ([]catalog.Artist, error) {
	if err := f.enter("Artists"); err != nil {
		return nil, err
	}
	return slices.Clone(f.artists), nil
}

func (f *fakeCatalog) Albums(context.Context) ([]catalog.Album, error) {
	if err := f.enter("Albums"); err != nil {
		return nil, err
	}
	return slices.Clone(f.albums), nil
}

func (f *fakeCatalog) Songs(context.Context) ([]catalog.Song, error) {
	if err := f.enter("Songs"); err != nil {
		return nil, err
	}
	return slices.Clone(f.songs), nil
}

func (f *fakeCatalog) Genres(context.Context) ([]catalog.Genre, error) {
	if err := f.enter("Genres"); err != nil {
		return nil, err
	}
	return slices.Clone(f.genres), nil
}

func (f *fakeCatalog) ArtistAlbums(_ context.Context, id string) ([]catalog.Album, error) {
	if err := f.enter("ArtistAlbums"); err != nil {
		return nil, err
	}
	var out []catalog.Album
	for _, a := range f.albums {
		if a.ArtistID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AlbumSongs(_ context.Context, id string) ([]catalog.Song, error) {
	if err := f.enter("AlbumSongs"); err != nil {
		return nil, err
	}
	var out []catalog.Song
	for _, s := range f.songs {
		if s.AlbumID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GenreArtists(_ context.Context, id string) ([]catalog.Artist, error) {
	if err := f.enter("GenreArtists"); err != nil {
		return nil, err
	}
	var out []catalog.Artist
	for _, a := range f.artists {
		if slices.Contains(f.genreOf[id], a.ArtistID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GenreAlbums(_ context.Context, id string) ([]catalog.Album, error) {
	if err := f.enter("GenreAlbums"); err != nil {
		return nil, err
	}
	var out []catalog.Album
	for _, a := range f.albums {
		if slices.Contains(f.genreOf[id], a.AlbumID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCatalog) SongMeta(_ context.Context, id string) (catalog.SongMeta, error) {
	if err := f.enter("SongMeta"); err != nil {
		return catalog.SongMeta{}, err
	}
	return catalog.SongMeta{SongID: id, Lyrics: "Line one\nLine two"}, nil
}

func (f *fakeCatalog) Artist(_ context.Context, id string) (catalog.Artist, error) {
	if err := f.enter("Artist"); err != nil {
		return catalog.Artist{}, err
	}
	for _, a := range f.artists {
		if a.ArtistID == id {
			return a, nil
		}
	}
	return catalog.Artist{}, fmt.Errorf("artist %s: %w", id, errNotFound)
}

func (f *fakeCatalog) ArtistMeta(_ context.Context, id string) (catalog.ArtistMeta, error) {
	if err := f.enter("ArtistMeta"); err != nil {
		return catalog.ArtistMeta{}, err
	}
	return catalog.ArtistMeta{ArtistID: id, Info: "Biography of " + id}, nil
}

func (f *fakeCatalog) Album(_ context.Context, id string) (catalog.Album, error) {
	if err := f.enter("Album"); err != nil {
		return catalog.Album{}, err
	}
	for _, a := range f.albums {
		if a.AlbumID == id {
			return a, nil
		}
	}
	return catalog.Album{}, fmt.Errorf("album %s: %w", id, errNotFound)
}

func (f *fakeCatalog) AlbumMeta(_ context.Context, id string) (catalog.AlbumMeta, error) {
	if err := f.enter("AlbumMeta"); err != nil {
		return catalog.AlbumMeta{}, err
	}
	return catalog.AlbumMeta{AlbumID: id, Info: "About " + id}, nil
}

func (f *fakeCatalog) AlbumRating(context.Context, string) (catalog.Rating, error) {
	if err := f.enter("AlbumRating"); err != nil {
		return catalog.Rating{}, err
	}
	return catalog.Rating{Average: 4.5, Count: 12}, nil
}

func (f *fakeCatalog) AlbumSongsRating(_ context.Context, id string) ([]catalog.SongRating, error) {
	if err := f.enter("AlbumSongsRating"); err != nil {
		return nil, err
	}
	var out []catalog.SongRating
	for _, s := range f.songs {
		if s.AlbumID == id {
			out = append(out, catalog.SongRating{SongID: s.SongID, Average: 4, Count: 3})
		}
	}
	return out, nil
}

func (f *fakeCatalog) Song(_ context.Context, id string) (catalog.Song, error) {
	if err := f.enter("Song"); err != nil {
		return catalog.Song{}, err
	}
	for _, s := range f.songs {
		if s.SongID == id {
			return s, nil
		}
	}
	return catalog.Song{}, fmt.Errorf("song %s: %w", id, errNotFound)
}

func (f *fakeCatalog) SongRating(context.Context, string) (catalog.Rating, error) {
	if err := f.enter("SongRating"); err != nil {
		return catalog.Rating{}, err
	}
	return catalog.Rating{Average: 3.5, Count: 2}, nil
}

func (f *fakeCatalog) Genre(_ context.Context, id string) (catalog.Genre, error) {
	if err := f.enter("Genre"); err != nil {
		return catalog.Genre{}, err
	}
	for _, g := range f.genres {
		if g.ID() == id {
			return g, nil
		}
	}
	return catalog.Genre{}, fmt.Errorf("genre %s: %w", id, errNotFound)
}

func (f *fakeCatalog) User(_ context.Context, id int) (catalog.User, error) {
	if err := f.enter("User"); err != nil {
		return catalog.User{}, err
	}
	u, ok := f.users[id]
	if !ok {
		return catalog.User{}, fmt.Errorf("user %d: %w", id, errNotFound)
	}
	return u, nil
}

func (f *fakeCatalog) Search(_ context.Context, query string) (catalog.SearchResult, error) {
	if err := f.enter("Search"); err != nil {
		return catalog.SearchResult{}, err
	}
	var res catalog.SearchResult
	for _, a := range f.artists {
		if a.Name == query {
			res.Artists = append(res.Artists, a)
		}
	}
	for _, s := range f.songs {
		if s.Name == query {
			res.Songs = append(res.Songs, s)
		}
	}
	return res, nil
}

func (f *fakeCatalog) Comments(_ context.Context, target catalog.Target, id string) ([]catalog.Comment, error) {
	if err := f.enter("Comments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Comment
	for _, c := range f.comments {
		if c.Target() == target && c.TargetID() == id {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) UserComments(_ context.Context, userID int, target catalog.Target) ([]catalog.Comment, error) {
	if err := f.enter("UserComments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Comment
	for _, c := range f.comments {
		if c.UserID == userID && c.Target() == target {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AddComment(_ context.Context, sess *api.Session, target catalog.Target, id, text string, stars int) (catalog.Comment, error) {
	if err := f.enter("AddComment"); err != nil {
		return catalog.Comment{}, err
	}
	if !sess.Valid() {
		return catalog.Comment{}, api.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := catalog.Comment{ID: f.nextID, UserID: 7, Comment: text}
	switch target {
	case catalog.TargetArtist:
		c.ArtistID = id
	case catalog.TargetAlbum:
		c.AlbumID, c.Star = id, stars
	case catalog.TargetSong:
		c.SongID, c.Star = id, stars
	}
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeCatalog) DeleteComment(_ context.Context, sess *api.Session, _ catalog.Target, commentID int) error {
	if err := f.enter("DeleteComment"); err != nil {
		return err
	}
	if !sess.Valid() {
		return api.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = slices.DeleteFunc(f.comments, func(c catalog.Comment) bool { return c.ID == commentID })
	return nil
}

func (f *fakeCatalog) AlbumCovers(_ context.Context, ids []string) (map[string]string, error) {
	if err := f.enter("AlbumCovers"); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = "http://covers.test/" + id + ".jpg"
	}
	return out, nil
}

func (f *fakeCatalog) ArtistPictures(_ context.Context, ids []string) (map[string]string, error) {
	if err := f.enter("ArtistPictures"); err != nil {
		return nil, err
	}
	return map[string]string{}, nil
}

func (f *fakeCatalog) Login(_ context.Context, username, password string) (api.Session, error) {
	if err := f.enter("Login"); err != nil {
		return api.Session{}, err
	}
	if username != "listener" || password != f.password {
		return api.Session{}, fmt.Errorf("login: %w", api.ErrUnauthorized)
	}
	return api.Session{AccessToken: "token-7", TokenType: "bearer", Username: username}, nil
}

func (f *fakeCatalog) CurrentUser(_ context.Context, sess *api.Session) (catalog.User, error) {
	if err := f.enter("CurrentUser"); err != nil {
		return catalog.User{}, err
	}
	if sess == nil || sess.AccessToken != "token-7" {
		return catalog.User{}, fmt.Errorf("me: %w", api.ErrUnauthorized)
	}
	return f.users[7], nil
}

var _ Catalog = (*fakeCatalog)(nil)
