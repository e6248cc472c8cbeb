package listview

import (
	"context"
	"maps"
)

// Settings is the persistable state of a list view's controls.
type Settings struct {
	Search  string            `json:"search,omitempty"`
	Sort    SortKey           `json:"sort,omitempty"`
	Facets  map[string]string `json:"facets,omitempty"`
	GenreID string            `json:"genre_id,omitempty"`
	Page    int               `json:"page,omitempty"`
}

// Settings exports the current controls.
func (c *Controller[T]) Settings() Settings {
	s := Settings{
		Search:  c.search,
		Sort:    c.sortKey,
		GenreID: c.GenreFilter(),
		Page:    c.page,
	}
	if len(c.facets) > 0 {
		s.Facets = maps.Clone(c.facets)
	}
	return s
}

// Apply restores controls exported by Settings. Unknown sort keys and facets
// are ignored. The genre filter is not restored here because it needs a
// cross-reference fetch; callers read s.GenreID and use FilterByGenre.
func (c *Controller[T]) Apply(s Settings) {
	c.search = s.Search
	if _, ok := c.cfg.Sorts[s.Sort]; ok {
		c.sortKey = s.Sort
	}
	c.facets = make(map[string]string)
	for facet, v := range s.Facets {
		if _, ok := c.cfg.Facets[facet]; ok && v != All && v != "" {
			c.facets[facet] = v
		}
	}
	c.refresh()
	c.page = c.clampPage(s.Page)
}

// CrossRefFunc fetches the ids of entities belonging to a genre.
type CrossRefFunc func(ctx context.Context, genreID string) ([]string, error)

// FilterByGenre fetches the cross-reference set for genreID and applies it.
// A fetch failure is returned for the caller's information only; the view
// has already fallen back to the pre-genre result.
func FilterByGenre[T any](ctx context.Context, c *Controller[T], genreID string, fetch CrossRefFunc) error {
	ids, err := fetch(ctx, genreID)
	c.SetGenreFilter(genreID, ids, err)
	return err
}

// Status is the lifecycle of one collection fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}
