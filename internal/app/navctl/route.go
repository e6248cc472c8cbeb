// Package navctl holds page routes and the back history.
package navctl

import (
	"strconv"
	"strings"
)

// Kind identifies a page type.
type Kind string

const (
	KindHome    Kind = "home"
	KindArtists Kind = "artists"
	KindAlbums  Kind = "albums"
	KindSongs   Kind = "songs"
	KindGenres  Kind = "genres"
	KindSearch  Kind = "search"
	KindMyMusic Kind = "my_music"

	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindSong   Kind = "song"
	KindGenre  Kind = "genre"
	KindStars  Kind = "stars" // songs of an artist with a given rating
	KindUser   Kind = "user"
)

// Tabs are the top-level pages, in header order.
var Tabs = []Kind{KindHome, KindArtists, KindAlbums, KindSongs, KindGenres, KindSearch, KindMyMusic}

// TabTitle returns the header label of a tab.
func TabTitle(k Kind) string {
	switch k {
	case KindHome:
		return "Home"
	case KindArtists:
		return "Artists"
	case KindAlbums:
		return "Albums"
	case KindSongs:
		return "Songs"
	case KindGenres:
		return "Genres"
	case KindSearch:
		return "Search"
	case KindMyMusic:
		return "My music"
	}
	return string(k)
}

// TabIndex returns the position of k in Tabs, or -1.
func TabIndex(k Kind) int {
	for i, t := range Tabs {
		if t == k {
			return i
		}
	}
	return -1
}

// IsList reports whether the page is backed by a list view controller.
func (k Kind) IsList() bool {
	switch k {
	case KindArtists, KindAlbums, KindSongs, KindGenres:
		return true
	}
	return false
}

// Route addresses one page.
type Route struct {
	Kind  Kind
	ID    string // entity id for detail pages, query for search
	Stars int    // KindStars only
}

// String renders the route for logs.
func (r Route) String() string {
	var b strings.Builder
	b.WriteString(string(r.Kind))
	if r.ID != "" {
		b.WriteString(":" + r.ID)
	}
	if r.Stars > 0 {
		b.WriteString(":" + strconv.Itoa(r.Stars))
	}
	return b.String()
}

// Restorable reports whether the route can be reopened on the next start.
// Star collections and searches are cheap to reach again and not saved.
func (r Route) Restorable() bool {
	switch r.Kind {
	case KindStars, KindSearch, "":
		return false
	case KindArtist, KindAlbum, KindSong, KindGenre, KindUser:
		return r.ID != ""
	}
	return true
}

// maxHistory bounds the back stack.
const maxHistory = 50

// History is the back stack of visited routes.
type History struct {
	stack []Route
}

// Push records r as a page to return to.
func (h *History) Push(r Route) {
	if n := len(h.stack); n > 0 && h.stack[n-1] == r {
		return
	}
	h.stack = append(h.stack, r)
	if len(h.stack) > maxHistory {
		h.stack = h.stack[len(h.stack)-maxHistory:]
	}
}

// Pop returns the last recorded route.
func (h *History) Pop() (Route, bool) {
	if len(h.stack) == 0 {
		return Route{}, false
	}
	r := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return r, true
}

// Len returns the number of recorded routes.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear forgets all routes.
func (h *History) Clear() {
	h.stack = nil
}
