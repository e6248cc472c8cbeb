package views

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// HomeSectionSize is the number of records shown in each home section.
const HomeSectionSize = 4

// Home holds the landing page sections.
type Home struct {
	FeaturedArtists []catalog.Artist
	NewestAlbums    []catalog.Album
	TopSongs        []catalog.Song
}

// LoadHome fetches the three collections concurrently and derives the
// sections: the first artists in fetch order, the newest albums and the best
// rated songs.
func LoadHome(ctx context.Context, f Fetcher, o Options) (Home, error) {
	var (
		artists []catalog.Artist
		albums  []catalog.Album
		songs   []catalog.Song
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		artists, err = f.Artists(gctx)
		if err != nil {
			return fmt.Errorf("artists: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		albums, err = f.Albums(gctx)
		if err != nil {
			return fmt.Errorf("albums: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		songs, err = f.Songs(gctx)
		if err != nil {
			return fmt.Errorf("songs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Home{}, err
	}

	return BuildHome(artists, albums, songs, o), nil
}

// BuildHome derives the home sections from full collections.
func BuildHome(artists []catalog.Artist, albums []catalog.Album, songs []catalog.Song, o Options) Home {
	o.PageSize = HomeSectionSize

	ac := Albums(o).NewController()
	ac.SetItems(albums)
	_ = ac.SetSortKey(listview.SortNewest)

	sc := Songs(o).NewController()
	sc.SetItems(songs)
	_ = sc.SetSortKey(listview.SortRating)

	return Home{
		FeaturedArtists: artists[:min(HomeSectionSize, len(artists)):min(HomeSectionSize, len(artists))],
		NewestAlbums:    ac.View().Items,
		TopSongs:        sc.View().Items,
	}
}
