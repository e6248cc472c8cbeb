package listview

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// SortKey names a sort order offered by a list view.
type SortKey string

// Sort keys shared by the catalog views.
const (
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
	SortRatingAsc SortKey = "rating_asc"
	SortNewest    SortKey = "release_date_newest"
	SortOldest    SortKey = "release_date_oldest"
)

// Compare orders two items; negative means a sorts before b.
type Compare[T any] func(a, b T) int

// Collator compares strings by locale rules. A collate.Collator keeps
// internal buffers, so calls are serialized.
type Collator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewCollator creates a collator for a BCP 47 tag. Unknown or empty tags
// fall back to the root locale.
func NewCollator(tag string) *Collator {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Und
	}
	return &Collator{c: collate.New(lang)}
}

// Compare returns the locale ordering of a and b.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// ByName orders items lexicographically with locale-aware collation.
func ByName[T any](name func(T) string, coll *Collator) Compare[T] {
	if coll == nil {
		coll = NewCollator("")
	}
	return func(a, b T) int {
		return coll.Compare(name(a), name(b))
	}
}

// ByStarsDesc orders items by rating, highest first.
func ByStarsDesc[T any](stars func(T) int) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(stars(b), stars(a))
	}
}

// ByStarsAsc orders items by rating, lowest first.
func ByStarsAsc[T any](stars func(T) int) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(stars(a), stars(b))
	}
}

// ByDate orders items by a parsed date. Items whose date does not parse
// always sort after dated ones, whatever the direction.
func ByDate[T any](date func(T) string, newestFirst bool) Compare[T] {
	return func(a, b T) int {
		ta, pa := catalog.ParseDate(date(a))
		tb, pb := catalog.ParseDate(date(b))
		okA, okB := pa != catalog.PrecisionNone, pb != catalog.PrecisionNone
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if newestFirst {
			return tb.Compare(ta)
		}
		return ta.Compare(tb)
	}
}
