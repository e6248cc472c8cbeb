package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/listview"
	"github.com/llehouerou/xiamiu/internal/ui/render"
	"github.com/llehouerou/xiamiu/internal/views"
)

var listFlags struct {
	search   string
	sort     string
	filters  []string
	genre    string
	page     int
	pageSize int
	json     bool
}

var listCmd = &cobra.Command{
	Use:   "list {artists|albums|songs|genres}",
	Short: "Print one page of a catalog list",
	Long: `Print one page of artists, albums, songs or genres with the same
search, sort, facet and genre filters as the interactive browser.

Examples:
  xiamiu list albums --sort release_date_newest --filter language=Mandarin
  xiamiu list artists --genre 3 --search wang --page 2`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"artists", "albums", "songs", "genres"},
	RunE:      runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.search, "search", "s", "", "case-insensitive name filter")
	f.StringVar(&listFlags.sort, "sort", "", "sort key: name, rating, rating_asc, release_date_newest, release_date_oldest")
	f.StringArrayVarP(&listFlags.filters, "filter", "f", nil, "facet filter as facet=value (repeatable)")
	f.StringVarP(&listFlags.genre, "genre", "g", "", "narrow artists or albums to a genre id")
	f.IntVarP(&listFlags.page, "page", "p", 1, "page number")
	f.IntVar(&listFlags.pageSize, "page-size", 0, "records per page (default: page_size from config)")
	f.BoolVar(&listFlags.json, "json", false, "print the page as JSON")
}

// columns renders one entity type as table rows.
type columns[T any] struct {
	headers []string
	row     func(T) []string
}

var (
	artistColumns = columns[catalog.Artist]{
		headers: []string{"ID", "Name", "Region"},
		row: func(a catalog.Artist) []string {
			return []string{a.ArtistID, render.Sanitize(a.Name), a.Region}
		},
	}
	albumColumns = columns[catalog.Album]{
		headers: []string{"ID", "Name", "Released", "Category", "Language", "Rating"},
		row: func(a catalog.Album) []string {
			return []string{a.AlbumID, render.Sanitize(a.Name), a.ReleaseDate, a.Category, a.Language, render.Stars(a.Star)}
		},
	}
	songColumns = columns[catalog.Song]{
		headers: []string{"ID", "Name", "Album", "Rating"},
		row: func(s catalog.Song) []string {
			return []string{s.SongID, render.Sanitize(s.Name), s.AlbumID, render.Stars(s.Star)}
		},
	}
	genreColumns = columns[catalog.Genre]{
		headers: []string{"ID", "Name"},
		row: func(g catalog.Genre) []string {
			return []string{g.ID(), render.Sanitize(g.Name)}
		},
	}
)

func runList(cmd *cobra.Command, args []string) error {
	o := viewOptions()
	switch args[0] {
	case "artists":
		return printList(cmd, views.Artists(o), client.Artists, views.ArtistCrossRef(client), artistColumns)
	case "albums":
		return printList(cmd, views.Albums(o), client.Albums, views.AlbumCrossRef(client), albumColumns)
	case "songs":
		return printList(cmd, views.Songs(o), client.Songs, nil, songColumns)
	case "genres":
		return printList(cmd, views.Genres(o), client.Genres, nil, genreColumns)
	}
	return fmt.Errorf("unknown list %q (want artists, albums, songs or genres)", args[0])
}

func viewOptions() views.Options {
	size := listFlags.pageSize
	if size <= 0 {
		size = cfg.GetPageSize()
	}
	return views.Options{
		PageSize: size,
		Collator: listview.NewCollator(cfg.Locale),
		Logger:   logger.Logger,
	}
}

// listPage is the JSON form of a printed page.
type listPage[T any] struct {
	View       string `json:"view"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
	Sort       string `json:"sort"`
	Genre      string `json:"genre,omitempty"`
	Degraded   bool   `json:"genre_filter_degraded,omitempty"`
	Items      []T    `json:"items"`
}

func printList[T any](
	cmd *cobra.Command,
	d views.Definition[T],
	fetch func(context.Context) ([]T, error),
	crossRef listview.CrossRefFunc,
	cols columns[T],
) error {
	ctx := cmd.Context()

	items, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", d.Name, err)
	}

	c := d.NewController()
	c.SetItems(items)
	if err := applyListFlags(ctx, cmd, d, c, crossRef); err != nil {
		return err
	}
	c.SetPage(listFlags.page)
	page := c.View()

	out := cmd.OutOrStdout()
	if listFlags.json {
		return printJSON(out, listPage[T]{
			View:       d.Name,
			Page:       page.Number,
			TotalPages: page.TotalPages,
			Total:      page.Total,
			Sort:       string(c.SortKey()),
			Genre:      c.GenreFilter(),
			Degraded:   c.Degraded(),
			Items:      orEmpty(page.Items),
		})
	}

	rows := make([][]string, len(page.Items))
	for i, item := range page.Items {
		rows[i] = cols.row(item)
	}
	if err := printTable(out, cols.headers, rows); err != nil {
		return err
	}
	if page.Total > 0 {
		_, err = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(
			"%s %d/%d, %s of %s, sorted by %s",
			d.Title, page.Number, page.TotalPages,
			render.Count(len(page.Items)), render.Count(page.Total),
			views.SortLabel(d.Sorts, c.SortKey()))))
	}
	return err
}

func applyListFlags[T any](
	ctx context.Context,
	cmd *cobra.Command,
	d views.Definition[T],
	c *listview.Controller[T],
	crossRef listview.CrossRefFunc,
) error {
	c.SetSearchTerm(listFlags.search)

	if listFlags.sort != "" {
		if err := c.SetSortKey(listview.SortKey(listFlags.sort)); err != nil {
			return fmt.Errorf("%s: %w (have %s)", d.Name, err, sortKeys(d.Sorts))
		}
	}

	for _, f := range listFlags.filters {
		facet, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("filter %q: want facet=value", f)
		}
		if err := c.SetCategoryFilter(strings.TrimSpace(facet), strings.TrimSpace(value)); err != nil {
			if errors.Is(err, listview.ErrUnknownFacet) {
				return fmt.Errorf("%s: %w (have %s)", d.Name, err, facetNames(d.Facets))
			}
			return err
		}
	}

	if listFlags.genre != "" {
		if !d.GenreFilter || crossRef == nil {
			return fmt.Errorf("%s cannot be filtered by genre", d.Name)
		}
		if _, err := strconv.Atoi(listFlags.genre); err != nil {
			return fmt.Errorf("genre %q: want a numeric id", listFlags.genre)
		}
		if err := listview.FilterByGenre(ctx, c, listFlags.genre, crossRef); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: genre filter unavailable, showing everything: %v\n", err)
		}
	}
	return nil
}

func sortKeys(opts []views.SortOption) string {
	keys := make([]string, len(opts))
	for i, o := range opts {
		keys[i] = string(o.Key)
	}
	return strings.Join(keys, ", ")
}

func facetNames(opts []views.FacetOption) string {
	if len(opts) == 0 {
		return "none"
	}
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return strings.Join(names, ", ")
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
