package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// fakeFetcher serves canned collections and counts album song fetches.
type fakeFetcher struct {
	artists     []catalog.Artist
	albums      []catalog.Album
	songs       []catalog.Song
	genres      []catalog.Genre
	artistAlbum map[string][]catalog.Album
	albumSongs  map[string][]catalog.Song
	genreArtist map[string][]catalog.Artist
	genreAlbum  map[string][]catalog.Album

	failAlbums   bool
	failGenre    bool
	failAlbumFor string

	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	fetched  []string
}

func (f *fakeFetcher) Artists(context.Context) ([]catalog.Artist, error) { return f.artists, nil }

func (f *fakeFetcher) Albums(context.Context) ([]catalog.Album, error) {
	if f.failAlbums {
		return nil, errors.New("albums down")
	}
	return f.albums, nil
}

func (f *fakeFetcher) Songs(context.Context) ([]catalog.Song, error)   { return f.songs, nil }
func (f *fakeFetcher) Genres(context.Context) ([]catalog.Genre, error) { return f.genres, nil }

func (f *fakeFetcher) ArtistAlbums(_ context.Context, id string) ([]catalog.Album, error) {
	return f.artistAlbum[id], nil
}

func (f *fakeFetcher) AlbumSongs(_ context.Context, id string) ([]catalog.Song, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()

	if id == f.failAlbumFor {
		return nil, errors.New("songs down")
	}
	return f.albumSongs[id], nil
}

func (f *fakeFetcher) GenreArtists(_ context.Context, id string) ([]catalog.Artist, error) {
	if f.failGenre {
		return nil, errors.New("genre down")
	}
	return f.genreArtist[id], nil
}

func (f *fakeFetcher) GenreAlbums(_ context.Context, id string) ([]catalog.Album, error) {
	if f.failGenre {
		return nil, errors.New("genre down")
	}
	return f.genreAlbum[id], nil
}

func TestAlbumsDefinition(t *testing.T) {
	def := Albums(Options{PageSize: 2})
	c := def.NewController()
	c.SetItems([]catalog.Album{
		{AlbumID: "1", Name: "B", ReleaseDate: "2001", Category: "Live", Language: "English", Star: 3},
		{AlbumID: "2", Name: "A", ReleaseDate: "2010-05-01", Category: "Studio", Language: "Chinese", Star: 5},
		{AlbumID: "3", Name: "C", ReleaseDate: "", Category: "Studio", Language: "English", Star: 4},
	})

	assert.Equal(t, "albums", def.Name)
	assert.True(t, def.GenreFilter)
	assert.Equal(t, 2, c.PageSize())

	names := func() []string {
		var out []string
		for _, a := range c.Filtered() {
			out = append(out, a.Name)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B", "C"}, names())
	require.NoError(t, c.SetSortKey(listview.SortNewest))
	assert.Equal(t, []string{"A", "B", "C"}, names())
	require.NoError(t, c.SetSortKey(listview.SortOldest))
	assert.Equal(t, []string{"B", "A", "C"}, names(), "undated albums last")
	require.NoError(t, c.SetSortKey(listview.SortRating))
	assert.Equal(t, []string{"A", "C", "B"}, names())

	require.NoError(t, c.SetCategoryFilter(FacetCategory, "Studio"))
	require.NoError(t, c.SetCategoryFilter(FacetLanguage, "English"))
	assert.Equal(t, []string{"C"}, names())

	for _, opt := range def.Sorts {
		require.NoError(t, c.SetSortKey(opt.Key), "offered sort %q must be configured", opt.Key)
	}
}

func TestArtistsDefinition(t *testing.T) {
	def := Artists(Options{})
	c := def.NewController()
	c.SetItems([]catalog.Artist{
		{ArtistID: "a1", Name: "Zed", Region: "EU"},
		{ArtistID: "a2", Name: "Amy", Region: "US"},
	})

	assert.Equal(t, listview.DefaultPageSize, c.PageSize())
	assert.Equal(t, "Amy", c.Filtered()[0].Name)
	assert.Equal(t, []string{"EU", "US"}, c.FacetValues(FacetRegion))
	assert.ErrorIs(t, c.SetSortKey(listview.SortRating), listview.ErrUnknownSortKey)
}

func TestSongsDefinition(t *testing.T) {
	c := Songs(Options{}).NewController()
	c.SetItems([]catalog.Song{
		{SongID: "s1", Name: "x", Star: 2},
		{SongID: "s2", Name: "y", Star: 5},
		{SongID: "s3", Name: "z", Star: 2},
	})

	require.NoError(t, c.SetSortKey(listview.SortRatingAsc))
	ids := make([]string, 0, 3)
	for _, s := range c.Filtered() {
		ids = append(ids, s.SongID)
	}
	assert.Equal(t, []string{"s1", "s3", "s2"}, ids)
}

func TestGenresDefinition(t *testing.T) {
	def := Genres(Options{})
	c := def.NewController()
	c.SetItems([]catalog.Genre{{GenreID: 2, Name: "Rock"}, {GenreID: 1, Name: "Jazz"}})

	assert.False(t, def.GenreFilter)
	assert.Equal(t, "Jazz", c.Filtered()[0].Name)

	c.SetGenreFilter("x", []string{"2"}, nil)
	require.Len(t, c.Filtered(), 1)
	assert.Equal(t, 2, c.Filtered()[0].GenreID)
}

func TestSortHelpers(t *testing.T) {
	opts := Albums(Options{}).Sorts

	assert.Equal(t, "Newest", SortLabel(opts, listview.SortNewest))
	assert.Equal(t, "bogus", SortLabel(opts, "bogus"))
	assert.Equal(t, listview.SortNewest, NextSort(opts, listview.SortName))
	assert.Equal(t, listview.SortName, NextSort(opts, listview.SortRating), "wraps around")
	assert.Equal(t, listview.SortName, NextSort(opts, "bogus"))
	assert.Equal(t, listview.SortKey("k"), NextSort(nil, "k"))
}

func TestCrossRef(t *testing.T) {
	f := &fakeFetcher{
		genreArtist: map[string][]catalog.Artist{"7": {{ArtistID: "a1"}, {ArtistID: "a3"}}},
		genreAlbum:  map[string][]catalog.Album{"7": {{AlbumID: "b2"}}},
	}

	ids, err := ArtistCrossRef(f)(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, ids)

	ids, err = AlbumCrossRef(f)(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, ids)

	f.failGenre = true
	_, err = ArtistCrossRef(f)(context.Background(), "7")
	assert.Error(t, err)
}

func TestFilterByGenreDegrades(t *testing.T) {
	f := &fakeFetcher{failGenre: true}
	c := Artists(Options{}).NewController()
	c.SetItems([]catalog.Artist{{ArtistID: "a1", Name: "A"}, {ArtistID: "a2", Name: "B"}})

	err := listview.FilterByGenre(context.Background(), c, "7", ArtistCrossRef(f))
	require.Error(t, err)
	assert.True(t, c.Degraded())
	assert.Len(t, c.Filtered(), 2, "failed cross-reference leaves the view unfiltered")
}

func TestBuildHome(t *testing.T) {
	artists := make([]catalog.Artist, 6)
	for i := range artists {
		artists[i] = catalog.Artist{ArtistID: fmt.Sprintf("a%d", i)}
	}
	albums := []catalog.Album{
		{AlbumID: "old", ReleaseDate: "1999"},
		{AlbumID: "new", ReleaseDate: "2020-01-02"},
		{AlbumID: "mid", ReleaseDate: "2005-06"},
		{AlbumID: "none", ReleaseDate: ""},
		{AlbumID: "newer", ReleaseDate: "2021"},
	}
	songs := []catalog.Song{
		{SongID: "s1", Star: 1}, {SongID: "s2", Star: 5}, {SongID: "s3", Star: 3},
		{SongID: "s4", Star: 5}, {SongID: "s5", Star: 4},
	}

	h := BuildHome(artists, albums, songs, Options{PageSize: 20})

	require.Len(t, h.FeaturedArtists, HomeSectionSize)
	assert.Equal(t, "a0", h.FeaturedArtists[0].ArtistID)

	var albumIDs []string
	for _, a := range h.NewestAlbums {
		albumIDs = append(albumIDs, a.AlbumID)
	}
	assert.Equal(t, []string{"newer", "new", "mid", "old"}, albumIDs)

	var songIDs []string
	for _, s := range h.TopSongs {
		songIDs = append(songIDs, s.SongID)
	}
	assert.Equal(t, []string{"s2", "s4", "s5", "s3"}, songIDs)
}

func TestBuildHome_Small(t *testing.T) {
	h := BuildHome(nil, []catalog.Album{{AlbumID: "x"}}, nil, Options{})
	assert.Empty(t, h.FeaturedArtists)
	assert.Len(t, h.NewestAlbums, 1)
	assert.Empty(t, h.TopSongs)
}

func TestLoadHome(t *testing.T) {
	f := &fakeFetcher{
		artists: []catalog.Artist{{ArtistID: "a1"}},
		albums:  []catalog.Album{{AlbumID: "b1", ReleaseDate: "2000"}},
		songs:   []catalog.Song{{SongID: "s1", Star: 3}},
	}
	h, err := LoadHome(context.Background(), f, Options{})
	require.NoError(t, err)
	assert.Len(t, h.FeaturedArtists, 1)
	assert.Len(t, h.NewestAlbums, 1)
	assert.Len(t, h.TopSongs, 1)

	f.failAlbums = true
	_, err = LoadHome(context.Background(), f, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "albums")
}

func newCollectionFetcher(albumCount int) *fakeFetcher {
	f := &fakeFetcher{
		artistAlbum: map[string][]catalog.Album{},
		albumSongs:  map[string][]catalog.Song{},
	}
	for i := range albumCount {
		id := fmt.Sprintf("b%d", i)
		f.artistAlbum["a1"] = append(f.artistAlbum["a1"], catalog.Album{AlbumID: id})
		f.albumSongs[id] = []catalog.Song{
			{SongID: id + "-1", AlbumID: id, Star: 5},
			{SongID: id + "-2", AlbumID: id, Star: (i % 3) + 1},
		}
	}
	return f
}

func TestArtistSongs_OrderAndBound(t *testing.T) {
	f := newCollectionFetcher(10)

	songs, err := ArtistSongs(context.Background(), f, "a1")
	require.NoError(t, err)
	require.Len(t, songs, 20)
	for i := range 10 {
		assert.Equal(t, fmt.Sprintf("b%d-1", i), songs[2*i].SongID)
		assert.Equal(t, fmt.Sprintf("b%d-2", i), songs[2*i+1].SongID)
	}
	assert.LessOrEqual(t, f.peak.Load(), int32(albumFetchLimit))
}

func TestArtistSongs_Failure(t *testing.T) {
	f := newCollectionFetcher(5)
	f.failAlbumFor = "b2"

	_, err := ArtistSongs(context.Background(), f, "a1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b2")
}

func TestStarCollection(t *testing.T) {
	f := newCollectionFetcher(4)

	five, err := StarCollection(context.Background(), f, "a1", 5)
	require.NoError(t, err)
	require.Len(t, five, 4)
	for _, s := range five {
		assert.Equal(t, 5, s.Star)
	}

	// b0 -> 1, b1 -> 2, b2 -> 3, b3 -> 1
	one, err := StarCollection(context.Background(), f, "a1", 1)
	require.NoError(t, err)
	require.Len(t, one, 2)
	assert.Equal(t, "b0-2", one[0].SongID)
	assert.Equal(t, "b3-2", one[1].SongID)

	none, err := StarCollection(context.Background(), f, "a1", 9)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGroupByStars(t *testing.T) {
	c := GroupByStars([]catalog.Song{
		{SongID: "a", Star: 4}, {SongID: "b", Star: 0}, {SongID: "c", Star: 4},
		{SongID: "d", Star: 2}, {SongID: "e", Star: 6},
	})

	assert.Equal(t, []int{4, 2}, c.Available())
	assert.Len(t, c.Stars(4), 2)
	assert.Nil(t, c.Stars(0))
	assert.Nil(t, c.Stars(6))
}
