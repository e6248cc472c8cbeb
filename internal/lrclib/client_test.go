package lrclib

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL+"/api/"), WithHTTPClient(srv.Client()))
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get", r.URL.Path)
		assert.Equal(t, "Amy", r.URL.Query().Get("artist_name"))
		assert.Equal(t, "Rain", r.URL.Query().Get("track_name"))
		assert.Equal(t, "Blue", r.URL.Query().Get("album_name"))
		assert.Contains(t, r.Header.Get("User-Agent"), "xiamiu")
		_ = json.NewEncoder(w).Encode(Result{TrackName: "Rain", SyncedLyrics: "[00:01.00]la"})
	})

	res, err := c.Get(context.Background(), "Amy", "Rain", "Blue")
	require.NoError(t, err)
	assert.True(t, res.HasSyncedLyrics())
	assert.False(t, res.HasPlainLyrics())
}

func TestGet_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "Amy", "Rain", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGet_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Get(context.Background(), "Amy", "Rain", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "Amy Rain", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode([]Result{{ID: 1}, {ID: 2, PlainLyrics: "la"}})
	})

	results, err := c.Search(context.Background(), "Amy Rain")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestBest(t *testing.T) {
	results := []Result{
		{ID: 1},
		{ID: 2, PlainLyrics: "plain"},
		{ID: 3, SyncedLyrics: "[00:01.00]synced"},
	}

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, 3, best.ID, "synced lyrics preferred")

	best, ok = Best(results[:2])
	require.True(t, ok)
	assert.Equal(t, 2, best.ID)

	_, ok = Best(results[:1])
	assert.False(t, ok)
}
