package lastfm

import (
	"cmp"
	"slices"
	"strings"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// SimilarLimit is the number of similar artists shown on an artist page.
const SimilarLimit = 10

// SimilarFetcher looks up similar artists by name.
type SimilarFetcher interface {
	GetSimilarArtists(artist string, limit int) ([]SimilarArtist, error)
}

// MatchCatalog marks similar artists present in the catalog (by
// case-insensitive name) and orders them by score, best first. At most
// limit items are returned.
func MatchCatalog(similar []SimilarArtist, artists []catalog.Artist, limit int) []SimilarItem {
	ids := make(map[string]string, len(artists))
	for _, a := range artists {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if _, ok := ids[key]; !ok {
			ids[key] = a.ArtistID
		}
	}

	items := make([]SimilarItem, 0, len(similar))
	for _, s := range similar {
		items = append(items, SimilarItem{
			Name:       s.Name,
			MatchScore: s.MatchScore,
			ArtistID:   ids[strings.ToLower(strings.TrimSpace(s.Name))],
		})
	}

	slices.SortStableFunc(items, func(a, b SimilarItem) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
