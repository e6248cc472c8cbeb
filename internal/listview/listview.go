// Package listview derives the displayed page of a catalog collection:
// name search, sort order, facet equality filters, genre intersection and
// fixed-size pagination over an immutable snapshot.
package listview

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// All is the facet value that disables filtering on that facet.
const All = "all"

// DefaultPageSize is used when a view does not configure one.
const DefaultPageSize = 8

// ErrUnknownSortKey is returned when a sort key is not offered by the view.
var ErrUnknownSortKey = errors.New("unknown sort key")

// ErrUnknownFacet is returned when a facet is not offered by the view.
var ErrUnknownFacet = errors.New("unknown facet")

// Config parametrizes a controller for one entity type.
type Config[T any] struct {
	ID   func(T) string
	Name func(T) string

	// Sorts maps each offered sort key to its comparator.
	Sorts       map[SortKey]Compare[T]
	DefaultSort SortKey

	// Facets maps a facet name (region, category, language) to the field
	// it filters on.
	Facets map[string]func(T) string

	PageSize int
	Logger   *zap.Logger
}

// Page is one page of the derived view.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based
	TotalPages int
	Total      int // items across all pages
}

type genreFilter struct {
	id  string
	ids map[string]struct{}
	err error
}

// Controller holds a collection snapshot and the view controls applied to it.
// It is not safe for concurrent use.
type Controller[T any] struct {
	cfg Config[T]

	items   []T
	search  string
	sortKey SortKey
	facets  map[string]string
	genre   *genreFilter
	page    int

	derived []T
}

// New creates a controller with an empty snapshot.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Sorts == nil {
		cfg.Sorts = map[SortKey]Compare[T]{}
	}
	c := &Controller[T]{
		cfg:     cfg,
		sortKey: cfg.DefaultSort,
		facets:  make(map[string]string),
		page:    1,
	}
	c.refresh()
	return c
}

// SetItems replaces the snapshot wholesale. View controls are kept and the
// current page is clamped to the new bounds.
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.refresh()
	c.page = c.clampPage(c.page)
}

// Items returns a copy of the unfiltered snapshot.
func (c *Controller[T]) Items() []T {
	return slices.Clone(c.items)
}

// SetSearchTerm filters by case-insensitive substring of the name.
// A blank term disables the filter; otherwise the term is matched as given,
// surrounding whitespace included.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.search = term
	c.page = 1
	c.refresh()
}

// SearchTerm returns the current search term.
func (c *Controller[T]) SearchTerm() string {
	return c.search
}

// SetSortKey changes the sort order. Unknown keys leave the view unchanged.
func (c *Controller[T]) SetSortKey(key SortKey) error {
	if _, ok := c.cfg.Sorts[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	c.sortKey = key
	c.page = 1
	c.refresh()
	return nil
}

// SortKey returns the active sort key (empty when unsorted).
func (c *Controller[T]) SortKey() SortKey {
	return c.sortKey
}

// SetCategoryFilter sets an equality filter on a facet. All clears it.
func (c *Controller[T]) SetCategoryFilter(facet, value string) error {
	if _, ok := c.cfg.Facets[facet]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFacet, facet)
	}
	if value == "" || value == All {
		delete(c.facets, facet)
	} else {
		c.facets[facet] = value
	}
	c.page = 1
	c.refresh()
	return nil
}

// CategoryFilter returns the active value of a facet, or All.
func (c *Controller[T]) CategoryFilter(facet string) string {
	if v, ok := c.facets[facet]; ok {
		return v
	}
	return All
}

// FacetNames returns the configured facet names in sorted order.
func (c *Controller[T]) FacetNames() []string {
	names := make([]string, 0, len(c.cfg.Facets))
	for name := range c.cfg.Facets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FacetValues returns the distinct non-empty values of a facet present in
// the snapshot, sorted.
func (c *Controller[T]) FacetValues(facet string) []string {
	field, ok := c.cfg.Facets[facet]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var values []string
	for _, item := range c.items {
		v := field(item)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// CycleCategoryFilter advances a facet through All and each value present
// in the snapshot, wrapping back to All. It returns the new value.
func (c *Controller[T]) CycleCategoryFilter(facet string) (string, error) {
	values := append([]string{All}, c.FacetValues(facet)...)
	current := c.CategoryFilter(facet)
	next := All
	if i := slices.Index(values, current); i >= 0 {
		next = values[(i+1)%len(values)]
	}
	if err := c.SetCategoryFilter(facet, next); err != nil {
		return "", err
	}
	return next, nil
}

// SetGenreFilter intersects the view with the ids of a genre cross-reference
// set. When the cross-reference fetch failed, fetchErr is non-nil and the
// filter falls back to the pre-genre result.
func (c *Controller[T]) SetGenreFilter(genreID string, ids []string, fetchErr error) {
	g := &genreFilter{id: genreID, err: fetchErr}
	if fetchErr != nil {
		c.cfg.Logger.Warn("genre cross-reference unavailable, showing unfiltered results",
			zap.String("genre", genreID), zap.Error(fetchErr))
	} else {
		g.ids = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			g.ids[id] = struct{}{}
		}
	}
	c.genre = g
	c.page = 1
	c.refresh()
}

// ClearGenreFilter removes the genre filter.
func (c *Controller[T]) ClearGenreFilter() {
	if c.genre == nil {
		return
	}
	c.genre = nil
	c.page = 1
	c.refresh()
}

// GenreFilter returns the active genre id, or "" when none.
func (c *Controller[T]) GenreFilter() string {
	if c.genre == nil {
		return ""
	}
	return c.genre.id
}

// Degraded reports whether the genre filter could not be applied because its
// cross-reference fetch failed.
func (c *Controller[T]) Degraded() bool {
	return c.genre != nil && c.genre.err != nil
}

// SetPage moves to page n, clamped to [1, TotalPages]. It returns the page
// actually selected.
func (c *Controller[T]) SetPage(n int) int {
	c.page = c.clampPage(n)
	return c.page
}

// NextPage advances one page if possible.
func (c *Controller[T]) NextPage() int {
	return c.SetPage(c.page + 1)
}

// PrevPage goes back one page if possible.
func (c *Controller[T]) PrevPage() int {
	return c.SetPage(c.page - 1)
}

// PageSize returns the number of items per page.
func (c *Controller[T]) PageSize() int {
	return c.cfg.PageSize
}

// TotalPages returns ceil(filtered / page size).
func (c *Controller[T]) TotalPages() int {
	return (len(c.derived) + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// Filtered returns a copy of the full filtered and sorted result.
func (c *Controller[T]) Filtered() []T {
	return slices.Clone(c.derived)
}

// View returns the current page.
func (c *Controller[T]) View() Page[T] {
	start := (c.page - 1) * c.cfg.PageSize
	end := min(start+c.cfg.PageSize, len(c.derived))
	var items []T
	if start < end {
		items = c.derived[start:end:end]
	}
	return Page[T]{
		Items:      items,
		Number:     c.page,
		TotalPages: c.TotalPages(),
		Total:      len(c.derived),
	}
}

func (c *Controller[T]) clampPage(n int) int {
	return max(min(n, c.TotalPages()), 1)
}

// refresh recomputes the derived slice from the snapshot. The snapshot is
// never reordered; the derived slice is always a fresh allocation.
func (c *Controller[T]) refresh() {
	filter := strings.TrimSpace(c.search) != ""
	term := strings.ToLower(c.search)
	result := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if filter && !strings.Contains(strings.ToLower(c.cfg.Name(item)), term) {
			continue
		}
		if !c.matchFacets(item) {
			continue
		}
		if !c.matchGenre(item) {
			continue
		}
		result = append(result, item)
	}
	if less, ok := c.cfg.Sorts[c.sortKey]; ok {
		slices.SortStableFunc(result, less)
	}
	c.derived = result
}

func (c *Controller[T]) matchFacets(item T) bool {
	for facet, want := range c.facets {
		if c.cfg.Facets[facet](item) != want {
			return false
		}
	}
	return true
}

func (c *Controller[T]) matchGenre(item T) bool {
	if c.genre == nil || c.genre.err != nil {
		return true
	}
	_, ok := c.genre.ids[c.cfg.ID(item)]
	return ok
}

// SortKeys returns the offered sort keys in a stable order.
func (c *Controller[T]) SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(c.cfg.Sorts))
	for k := range c.cfg.Sorts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b SortKey) int { return cmp.Compare(a, b) })
	return keys
}
