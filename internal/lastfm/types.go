package lastfm

// SimilarArtist represents a similar artist from Last.fm.
type SimilarArtist struct {
	Name       string
	MatchScore float64 // 0.0-1.0 similarity score
}

// SimilarItem is a similar artist matched against the catalog.
type SimilarItem struct {
	Name       string
	MatchScore float64
	ArtistID   string // catalog id, empty when the artist is not in the catalog
}

// InCatalog reports whether the artist exists in the catalog.
func (s SimilarItem) InCatalog() bool {
	return s.ArtistID != ""
}

// Percent returns the match score as a whole percentage.
func (s SimilarItem) Percent() int {
	return int(s.MatchScore*100 + 0.5)
}
