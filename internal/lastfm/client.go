package lastfm

import (
	"fmt"
	"strconv"

	"github.com/shkh/lastfm-go/lastfm"
)

// Client wraps the Last.fm API for artist lookups.
type Client struct {
	api *lastfm.Api
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret)}
}

// GetSimilarArtists fetches similar artists from Last.fm.
func (c *Client) GetSimilarArtists(artist string, limit int) ([]SimilarArtist, error) {
	params := lastfm.P{
		"artist":      artist,
		"limit":       limit,
		"autocorrect": 1,
	}

	result, err := c.api.Artist.GetSimilar(params)
	if err != nil {
		return nil, fmt.Errorf("get similar artists: %w", err)
	}

	artists := make([]SimilarArtist, 0, len(result.Similars))
	for _, a := range result.Similars {
		artists = append(artists, SimilarArtist{
			Name:       a.Name,
			MatchScore: parseScore(a.Match),
		})
	}

	return artists, nil
}

// parseScore reads a Last.fm match value; anything unparseable is 0.
func parseScore(s string) float64 {
	score, err := strconv.ParseFloat(s, 64)
	if err != nil || score < 0 {
		return 0
	}
	return min(score, 1)
}
