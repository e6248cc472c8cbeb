// Package catalog defines the music catalog records returned by the xiamiu API.
package catalog

import "strconv"

// Artist is a performer in the catalog.
type Artist struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
	Region   string `json:"reign"`
}

// Album is a release by an artist.
type Album struct {
	AlbumID     string `json:"album_id"`
	ArtistID    string `json:"artist_id"`
	Name        string `json:"name"`
	Language    string `json:"album_lan"`
	ReleaseDate string `json:"release_date"`
	Category    string `json:"album_category"`
	RecordLabel string `json:"record_label"`
	Star        int    `json:"star"`
	ListenDate  string `json:"listen_date,omitempty"`

	// PicAddress is only present when the server inlines cover URLs in the
	// album collection; otherwise covers come from the meta endpoints.
	PicAddress string `json:"pic_address,omitempty"`
}

// Song is a track on an album.
type Song struct {
	SongID  string `json:"song_id"`
	AlbumID string `json:"album_id"`
	Name    string `json:"name"`
	Star    int    `json:"star"`
}

// Genre groups artists and albums. Genre ids are numeric on the wire.
type Genre struct {
	GenreID int    `json:"id"`
	Name    string `json:"name"`
	Info    string `json:"info"`
}

// ID returns the genre id as a string, the form used in id sets and paths.
func (g Genre) ID() string {
	return strconv.Itoa(g.GenreID)
}

// ArtistMeta holds the biography and picture of an artist.
type ArtistMeta struct {
	ArtistID   string `json:"artist_id"`
	Info       string `json:"info"`
	PicAddress string `json:"pic_address"`
}

// AlbumMeta holds the description and cover of an album.
type AlbumMeta struct {
	AlbumID    string `json:"album_id"`
	Info       string `json:"info"`
	PicAddress string `json:"pic_address"`
}

// SongMeta holds song lyrics.
type SongMeta struct {
	SongID string `json:"song_id"`
	Lyrics string `json:"lyrics"`
}

// User is a catalog user profile.
type User struct {
	ID            int    `json:"id"`
	UserName      string `json:"user_name"`
	Location      string `json:"location"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Constellation string `json:"constellation"`
	PlayCount     int    `json:"play_count"`
	JoinTime      string `json:"join_time,omitempty"`
}

// Rating is an aggregate of user ratings.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SongRating is the aggregate rating of one song in an album.
type SongRating struct {
	SongID  string  `json:"song_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SearchResult is the response of the global search endpoint.
type SearchResult struct {
	Artists []Artist `json:"artists"`
	Albums  []Album  `json:"albums"`
	Songs   []Song   `json:"songs"`
}

// Empty reports whether the search matched nothing.
func (r SearchResult) Empty() bool {
	return len(r.Artists) == 0 && len(r.Albums) == 0 && len(r.Songs) == 0
}

// MaxStars is the top of the rating scale.
const MaxStars = 5

// ClampStars bounds a rating to the 1..MaxStars scale accepted for comments.
func ClampStars(n int) int {
	return min(max(n, 1), MaxStars)
}
