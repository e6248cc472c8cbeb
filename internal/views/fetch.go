package views

import (
	"context"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// Fetcher is the slice of the API client the views read from.
type Fetcher interface {
	Artists(ctx context.Context) ([]catalog.Artist, error)
	Albums(ctx context.Context) ([]catalog.Album, error)
	Songs(ctx context.Context) ([]catalog.Song, error)
	Genres(ctx context.Context) ([]catalog.Genre, error)
	ArtistAlbums(ctx context.Context, id string) ([]catalog.Album, error)
	AlbumSongs(ctx context.Context, id string) ([]catalog.Song, error)
	GenreArtists(ctx context.Context, id string) ([]catalog.Artist, error)
	GenreAlbums(ctx context.Context, id string) ([]catalog.Album, error)
}

// ArtistCrossRef resolves a genre to the ids of its artists.
func ArtistCrossRef(f Fetcher) listview.CrossRefFunc {
	return func(ctx context.Context, genreID string) ([]string, error) {
		artists, err := f.GenreArtists(ctx, genreID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(artists))
		for i, a := range artists {
			ids[i] = a.ArtistID
		}
		return ids, nil
	}
}

// AlbumCrossRef resolves a genre to the ids of its albums.
func AlbumCrossRef(f Fetcher) listview.CrossRefFunc {
	return func(ctx context.Context, genreID string) ([]string, error) {
		albums, err := f.GenreAlbums(ctx, genreID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(albums))
		for i, a := range albums {
			ids[i] = a.AlbumID
		}
		return ids, nil
	}
}
