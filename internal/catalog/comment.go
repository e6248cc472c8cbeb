package catalog

// Target identifies what a comment is attached to.
type Target string

const (
	TargetArtist Target = "artists"
	TargetAlbum  Target = "albums"
	TargetSong   Target = "songs"
)

// Rated reports whether comments on this target carry a star rating.
func (t Target) Rated() bool {
	return t == TargetAlbum || t == TargetSong
}

// Comment is a user review. Exactly one of ArtistID, AlbumID or SongID is set.
type Comment struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Comment    string `json:"comment"`
	NumLike    int    `json:"num_like"`
	ReviewDate string `json:"review_date"`
	Star       int    `json:"star,omitempty"`
	ArtistID   string `json:"artist_id,omitempty"`
	AlbumID    string `json:"album_id,omitempty"`
	SongID     string `json:"song_id,omitempty"`
	Created    string `json:"created,omitempty"`
	Modified   string `json:"modified,omitempty"`
}

// Target returns the kind of entity the comment belongs to.
func (c Comment) Target() Target {
	switch {
	case c.SongID != "":
		return TargetSong
	case c.AlbumID != "":
		return TargetAlbum
	default:
		return TargetArtist
	}
}

// TargetID returns the id of the commented entity.
func (c Comment) TargetID() string {
	switch c.Target() {
	case TargetSong:
		return c.SongID
	case TargetAlbum:
		return c.AlbumID
	default:
		return c.ArtistID
	}
}

// NewComment is the payload for posting a comment.
type NewComment struct {
	Comment  string `json:"comment"`
	Star     int    `json:"star,omitempty"`
	UserID   int    `json:"user_id"`
	ArtistID string `json:"artist_id,omitempty"`
	AlbumID  string `json:"album_id,omitempty"`
	SongID   string `json:"song_id,omitempty"`
}
