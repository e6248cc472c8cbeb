package views

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// albumFetchLimit bounds concurrent album song fetches.
const albumFetchLimit = 4

// ArtistSongs fetches every song of every album of an artist. Songs keep
// album order, then track order within each album.
func ArtistSongs(ctx context.Context, f Fetcher, artistID string) ([]catalog.Song, error) {
	albums, err := f.ArtistAlbums(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("artist albums: %w", err)
	}
	return AlbumsSongs(ctx, f, albums)
}

// AlbumsSongs fetches the songs of each album with bounded concurrency.
func AlbumsSongs(ctx context.Context, f Fetcher, albums []catalog.Album) ([]catalog.Song, error) {
	perAlbum := make([][]catalog.Song, len(albums))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(albumFetchLimit)
	for i, album := range albums {
		g.Go(func() error {
			songs, err := f.AlbumSongs(gctx, album.AlbumID)
			if err != nil {
				return fmt.Errorf("album %s songs: %w", album.AlbumID, err)
			}
			perAlbum[i] = songs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []catalog.Song
	for _, songs := range perAlbum {
		out = append(out, songs...)
	}
	return out, nil
}

// Collections groups songs by star rating. Index n holds the n-star songs;
// ratings outside 1..MaxStars are left out.
type Collections [catalog.MaxStars + 1][]catalog.Song

// GroupByStars buckets songs by rating, keeping input order in each bucket.
func GroupByStars(songs []catalog.Song) Collections {
	var c Collections
	for _, s := range songs {
		if s.Star >= 1 && s.Star <= catalog.MaxStars {
			c[s.Star] = append(c[s.Star], s)
		}
	}
	return c
}

// Stars returns the songs rated exactly n.
func (c Collections) Stars(n int) []catalog.Song {
	if n < 1 || n > catalog.MaxStars {
		return nil
	}
	return c[n]
}

// Available returns the ratings that have songs, highest first.
func (c Collections) Available() []int {
	var out []int
	for n := catalog.MaxStars; n >= 1; n-- {
		if len(c[n]) > 0 {
			out = append(out, n)
		}
	}
	return out
}

// StarCollection returns an artist's songs rated exactly stars.
func StarCollection(ctx context.Context, f Fetcher, artistID string, stars int) ([]catalog.Song, error) {
	songs, err := ArtistSongs(ctx, f, artistID)
	if err != nil {
		return nil, err
	}
	return GroupByStars(songs).Stars(stars), nil
}
