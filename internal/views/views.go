// Package views configures one list controller per catalog entity and holds
// the derived pages built on top of them (home, star collections).
package views

import (
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// Facet names.
const (
	FacetRegion   = "region"
	FacetCategory = "category"
	FacetLanguage = "language"
)

// SortOption is a sort key with its display label.
type SortOption struct {
	Key   listview.SortKey
	Label string
}

// FacetOption is a facet with its display label.
type FacetOption struct {
	Name  string
	Label string
}

// Definition describes a list page for one entity type.
type Definition[T any] struct {
	Name   string // view id, also the state key
	Title  string
	Sorts  []SortOption
	Facets []FacetOption

	// GenreFilter reports whether the view can be narrowed to a genre.
	GenreFilter bool

	Config listview.Config[T]
}

// NewController returns a controller configured for the view.
func (d Definition[T]) NewController() *listview.Controller[T] {
	return listview.New(d.Config)
}

// Options are shared by all definitions.
type Options struct {
	PageSize int
	Collator *listview.Collator
	Logger   *zap.Logger
}

func (o Options) collator() *listview.Collator {
	if o.Collator == nil {
		return listview.NewCollator("")
	}
	return o.Collator
}

func (o Options) logger(view string) *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger.Named("views").With(zap.String("view", view))
}

// Artists lists artists by name with a region facet and genre filtering.
func Artists(o Options) Definition[catalog.Artist] {
	name := func(a catalog.Artist) string { return a.Name }
	return Definition[catalog.Artist]{
		Name:        "artists",
		Title:       "Artists",
		Sorts:       []SortOption{{listview.SortName, "Name"}},
		Facets:      []FacetOption{{FacetRegion, "Region"}},
		GenreFilter: true,
		Config: listview.Config[catalog.Artist]{
			ID:   func(a catalog.Artist) string { return a.ArtistID },
			Name: name,
			Sorts: map[listview.SortKey]listview.Compare[catalog.Artist]{
				listview.SortName: listview.ByName(name, o.collator()),
			},
			DefaultSort: listview.SortName,
			Facets: map[string]func(catalog.Artist) string{
				FacetRegion: func(a catalog.Artist) string { return a.Region },
			},
			PageSize: o.PageSize,
			Logger:   o.logger("artists"),
		},
	}
}

// Albums lists albums with name, rating and release date orders, category
// and language facets, and genre filtering.
func Albums(o Options) Definition[catalog.Album] {
	name := func(a catalog.Album) string { return a.Name }
	released := func(a catalog.Album) string { return a.ReleaseDate }
	return Definition[catalog.Album]{
		Name:  "albums",
		Title: "Albums",
		Sorts: []SortOption{
			{listview.SortName, "Name"},
			{listview.SortNewest, "Newest"},
			{listview.SortOldest, "Oldest"},
			{listview.SortRating, "Rating"},
		},
		Facets: []FacetOption{
			{FacetCategory, "Category"},
			{FacetLanguage, "Language"},
		},
		GenreFilter: true,
		Config: listview.Config[catalog.Album]{
			ID:   func(a catalog.Album) string { return a.AlbumID },
			Name: name,
			Sorts: map[listview.SortKey]listview.Compare[catalog.Album]{
				listview.SortName:   listview.ByName(name, o.collator()),
				listview.SortNewest: listview.ByDate(released, true),
				listview.SortOldest: listview.ByDate(released, false),
				listview.SortRating: listview.ByStarsDesc(func(a catalog.Album) int { return a.Star }),
			},
			DefaultSort: listview.SortName,
			Facets: map[string]func(catalog.Album) string{
				FacetCategory: func(a catalog.Album) string { return a.Category },
				FacetLanguage: func(a catalog.Album) string { return a.Language },
			},
			PageSize: o.PageSize,
			Logger:   o.logger("albums"),
		},
	}
}

// Songs lists songs by name or rating.
func Songs(o Options) Definition[catalog.Song] {
	name := func(s catalog.Song) string { return s.Name }
	stars := func(s catalog.Song) int { return s.Star }
	return Definition[catalog.Song]{
		Name:  "songs",
		Title: "Songs",
		Sorts: []SortOption{
			{listview.SortName, "Name"},
			{listview.SortRating, "Rating"},
			{listview.SortRatingAsc, "Rating (low first)"},
		},
		Config: listview.Config[catalog.Song]{
			ID:   func(s catalog.Song) string { return s.SongID },
			Name: name,
			Sorts: map[listview.SortKey]listview.Compare[catalog.Song]{
				listview.SortName:      listview.ByName(name, o.collator()),
				listview.SortRating:    listview.ByStarsDesc(stars),
				listview.SortRatingAsc: listview.ByStarsAsc(stars),
			},
			DefaultSort: listview.SortName,
			PageSize:    o.PageSize,
			Logger:      o.logger("songs"),
		},
	}
}

// Genres lists genres by name.
func Genres(o Options) Definition[catalog.Genre] {
	name := func(g catalog.Genre) string { return g.Name }
	return Definition[catalog.Genre]{
		Name:  "genres",
		Title: "Genres",
		Sorts: []SortOption{{listview.SortName, "Name"}},
		Config: listview.Config[catalog.Genre]{
			ID:   catalog.Genre.ID,
			Name: name,
			Sorts: map[listview.SortKey]listview.Compare[catalog.Genre]{
				listview.SortName: listview.ByName(name, o.collator()),
			},
			DefaultSort: listview.SortName,
			PageSize:    o.PageSize,
			Logger:      o.logger("genres"),
		},
	}
}

// SortLabel returns the label of key, or the key itself.
func SortLabel(opts []SortOption, key listview.SortKey) string {
	for _, o := range opts {
		if o.Key == key {
			return o.Label
		}
	}
	return string(key)
}

// NextSort returns the option after key, wrapping around.
func NextSort(opts []SortOption, key listview.SortKey) listview.SortKey {
	if len(opts) == 0 {
		return key
	}
	for i, o := range opts {
		if o.Key == key {
			return opts[(i+1)%len(opts)].Key
		}
	}
	return opts[0].Key
}
