package lastfm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// SimilarResultMsg carries the similar artists of an artist page.
type SimilarResultMsg struct {
	ArtistID string
	Version  uint64
	Items    []SimilarItem
	Err      error
}

// SimilarParams contains parameters for FetchSimilarCmd.
type SimilarParams struct {
	Client   SimilarFetcher
	ArtistID string
	Name     string
	Version  uint64
	// Catalog is the artist collection used to mark known artists.
	Catalog []catalog.Artist
}

// FetchSimilarCmd fetches similar artists and matches them against the catalog.
func FetchSimilarCmd(p SimilarParams) tea.Cmd {
	return func() tea.Msg {
		similar, err := p.Client.GetSimilarArtists(p.Name, SimilarLimit*2)
		if err != nil {
			return SimilarResultMsg{ArtistID: p.ArtistID, Version: p.Version, Err: err}
		}
		return SimilarResultMsg{
			ArtistID: p.ArtistID,
			Version:  p.Version,
			Items:    MatchCatalog(similar, p.Catalog, SimilarLimit),
		}
	}
}
