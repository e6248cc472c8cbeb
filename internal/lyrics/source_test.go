package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/lrclib"
)

type fakeMeta struct {
	lyrics string
	err    error
}

func (f fakeMeta) SongMeta(_ context.Context, id string) (catalog.SongMeta, error) {
	return catalog.SongMeta{SongID: id, Lyrics: f.lyrics}, f.err
}

// lrclibServer answers /get with getStatus and /search with results.
func lrclibServer(t *testing.T, getStatus int, get lrclib.Result, search []lrclib.Result) (*lrclib.Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/get":
			if getStatus != http.StatusOK {
				w.WriteHeader(getStatus)
				return
			}
			_ = json.NewEncoder(w).Encode(get)
		case "/search":
			_ = json.NewEncoder(w).Encode(search)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return lrclib.New(lrclib.WithBaseURL(srv.URL), lrclib.WithHTTPClient(srv.Client())), &calls
}

var track = Track{SongID: "s1", Artist: "Amy", Title: "Rain", Album: "Blue"}

func TestFetch_CatalogFirst(t *testing.T) {
	client, calls := lrclibServer(t, http.StatusOK, lrclib.Result{PlainLyrics: "remote"}, nil)
	s := NewSource(fakeMeta{lyrics: "from the catalog"}, client, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), track)

	assert.Equal(t, OriginCatalog, res.Origin)
	assert.Equal(t, []string{"from the catalog"}, res.Lyrics.Text())
	assert.Zero(t, calls.Load())
}

func TestFetch_LRCLibThenCache(t *testing.T) {
	client, calls := lrclibServer(t, http.StatusOK,
		lrclib.Result{TrackName: "Rain", SyncedLyrics: "[00:01.00]one\n[00:02.00]two"}, nil)
	s := NewSource(fakeMeta{err: errors.New("404")}, client, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), track)
	require.NoError(t, res.Err)
	assert.Equal(t, OriginLRCLib, res.Origin)
	assert.Equal(t, []string{"one", "two"}, res.Lyrics.Text())
	assert.Equal(t, "Rain", res.Lyrics.Title)
	assert.Equal(t, int32(1), calls.Load())

	res = s.Fetch(context.Background(), track)
	assert.Equal(t, OriginCache, res.Origin)
	assert.Equal(t, []string{"one", "two"}, res.Lyrics.Text())
	assert.Equal(t, int32(1), calls.Load(), "cached lyrics skip the network")
}

func TestFetch_SearchFallback(t *testing.T) {
	client, _ := lrclibServer(t, http.StatusNotFound, lrclib.Result{},
		[]lrclib.Result{{ID: 1}, {ID: 2, PlainLyrics: "found\nby search"}})
	s := NewSource(fakeMeta{}, client, nil).WithCacheDir("")

	res := s.Fetch(context.Background(), track)
	assert.Equal(t, OriginLRCLib, res.Origin)
	assert.Equal(t, []string{"found", "by search"}, res.Lyrics.Text())
}

func TestFetch_NotFound(t *testing.T) {
	client, _ := lrclibServer(t, http.StatusNotFound, lrclib.Result{}, nil)
	s := NewSource(fakeMeta{}, client, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), track)
	assert.Equal(t, OriginNotFound, res.Origin)
	assert.NoError(t, res.Err)
	assert.True(t, res.Lyrics.Empty())
}

func TestFetch_LRCLibError(t *testing.T) {
	client, _ := lrclibServer(t, http.StatusInternalServerError, lrclib.Result{}, nil)
	s := NewSource(fakeMeta{}, client, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), track)
	assert.Equal(t, OriginNotFound, res.Origin)
	assert.Error(t, res.Err)
}

func TestFetch_LRCLibDisabled(t *testing.T) {
	s := NewSource(fakeMeta{}, nil, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), track)
	assert.Equal(t, OriginNotFound, res.Origin)
	assert.NoError(t, res.Err)
}

func TestFetch_MissingArtist(t *testing.T) {
	s := NewSource(nil, nil, nil).WithCacheDir(t.TempDir())

	res := s.Fetch(context.Background(), Track{Title: "Rain"})
	assert.Equal(t, OriginNotFound, res.Origin)
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	s := NewSource(nil, nil, nil).WithCacheDir(dir)

	assert.Equal(t, filepath.Join(dir, "AC_DC", "What_.lrc"), s.cachePath("AC/DC", "What?"))
	assert.Empty(t, s.WithCacheDir("").cachePath("a", "b"))

	require.NoError(t, s.saveToCache("AC/DC", "What?", "[00:01.00]x"))
	_, err := os.Stat(s.cachePath("AC/DC", "What?"))
	assert.NoError(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"normal", "normal"},
		{"a:b", "a_b"},
		{" .dots. ", "dots"},
		{"", "_"},
		{"...", "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "sanitizeFilename(%q)", tt.in)
	}
}
