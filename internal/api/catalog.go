package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// Artists returns every artist.
func (c *Client) Artists(ctx context.Context) ([]catalog.Artist, error) {
	return getJSON[[]catalog.Artist](ctx, c, "/artists/", nil)
}

// ArtistsByRegion returns the artists of one region.
func (c *Client) ArtistsByRegion(ctx context.Context, region string) ([]catalog.Artist, error) {
	return getJSON[[]catalog.Artist](ctx, c, "/artists/reign/"+esc(region), nil)
}

// Artist returns one artist.
func (c *Client) Artist(ctx context.Context, id string) (catalog.Artist, error) {
	return getJSON[catalog.Artist](ctx, c, "/artists/"+esc(id), nil)
}

// ArtistAlbums returns the albums released by an artist.
func (c *Client) ArtistAlbums(ctx context.Context, id string) ([]catalog.Album, error) {
	return getJSON[[]catalog.Album](ctx, c, "/artists/"+esc(id)+"/albums", nil)
}

// ArtistMeta returns an artist's biography and picture.
func (c *Client) ArtistMeta(ctx context.Context, id string) (catalog.ArtistMeta, error) {
	return getJSON[catalog.ArtistMeta](ctx, c, "/artists/"+esc(id)+"/meta", nil)
}

// Albums returns every album.
func (c *Client) Albums(ctx context.Context) ([]catalog.Album, error) {
	return getJSON[[]catalog.Album](ctx, c, "/albums/", nil)
}

// AlbumsByLanguage returns the albums in one language.
func (c *Client) AlbumsByLanguage(ctx context.Context, language string) ([]catalog.Album, error) {
	return getJSON[[]catalog.Album](ctx, c, "/albums/language/"+esc(language), nil)
}

// Album returns one album.
func (c *Client) Album(ctx context.Context, id string) (catalog.Album, error) {
	return getJSON[catalog.Album](ctx, c, "/albums/"+esc(id), nil)
}

// AlbumSongs returns the tracks of an album.
func (c *Client) AlbumSongs(ctx context.Context, id string) ([]catalog.Song, error) {
	return getJSON[[]catalog.Song](ctx, c, "/albums/"+esc(id)+"/songs", nil)
}

// AlbumMeta returns an album's description and cover.
func (c *Client) AlbumMeta(ctx context.Context, id string) (catalog.AlbumMeta, error) {
	return getJSON[catalog.AlbumMeta](ctx, c, "/albums/"+esc(id)+"/meta", nil)
}

// AlbumRating returns the aggregate user rating of an album.
func (c *Client) AlbumRating(ctx context.Context, id string) (catalog.Rating, error) {
	return getJSON[catalog.Rating](ctx, c, "/albums/"+esc(id)+"/rating", nil)
}

// AlbumSongsRating returns the aggregate rating of each song of an album.
func (c *Client) AlbumSongsRating(ctx context.Context, id string) ([]catalog.SongRating, error) {
	return getJSON[[]catalog.SongRating](ctx, c, "/albums/"+esc(id)+"/songs-rating", nil)
}

// Songs returns every song.
func (c *Client) Songs(ctx context.Context) ([]catalog.Song, error) {
	return getJSON[[]catalog.Song](ctx, c, "/songs/", nil)
}

// Song returns one song.
func (c *Client) Song(ctx context.Context, id string) (catalog.Song, error) {
	return getJSON[catalog.Song](ctx, c, "/songs/"+esc(id), nil)
}

// SongMeta returns the lyrics of a song.
func (c *Client) SongMeta(ctx context.Context, id string) (catalog.SongMeta, error) {
	return getJSON[catalog.SongMeta](ctx, c, "/songs/"+esc(id)+"/meta", nil)
}

// SongRating returns the aggregate user rating of a song.
func (c *Client) SongRating(ctx context.Context, id string) (catalog.Rating, error) {
	return getJSON[catalog.Rating](ctx, c, "/songs/"+esc(id)+"/rating", nil)
}

// Genres returns every genre.
func (c *Client) Genres(ctx context.Context) ([]catalog.Genre, error) {
	return getJSON[[]catalog.Genre](ctx, c, "/genres/", nil)
}

// Genre returns one genre.
func (c *Client) Genre(ctx context.Context, id string) (catalog.Genre, error) {
	return getJSON[catalog.Genre](ctx, c, "/genres/"+esc(id), nil)
}

// GenreArtists returns the artists tagged with a genre.
func (c *Client) GenreArtists(ctx context.Context, id string) ([]catalog.Artist, error) {
	return getJSON[[]catalog.Artist](ctx, c, "/genres/"+esc(id)+"/artists", nil)
}

// GenreAlbums returns the albums tagged with a genre.
func (c *Client) GenreAlbums(ctx context.Context, id string) ([]catalog.Album, error) {
	return getJSON[[]catalog.Album](ctx, c, "/genres/"+esc(id)+"/albums", nil)
}

// Users returns every user.
func (c *Client) Users(ctx context.Context) ([]catalog.User, error) {
	return getJSON[[]catalog.User](ctx, c, "/users/", nil)
}

// User returns one user profile.
func (c *Client) User(ctx context.Context, id int) (catalog.User, error) {
	return getJSON[catalog.User](ctx, c, "/users/"+strconv.Itoa(id), nil)
}

// Search runs the server-side search across artists, albums and songs.
func (c *Client) Search(ctx context.Context, query string) (catalog.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	return getJSON[catalog.SearchResult](ctx, c, "/search/", q)
}
