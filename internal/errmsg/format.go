// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Collection loads
	OpArtistsLoad Op = "load artists"
	OpAlbumsLoad  Op = "load albums"
	OpSongsLoad   Op = "load songs"
	OpGenresLoad  Op = "load genres"
	OpHomeLoad    Op = "load home page"

	// Detail pages
	OpArtistLoad Op = "load artist"
	OpAlbumLoad  Op = "load album"
	OpSongLoad   Op = "load song"
	OpGenreLoad  Op = "load genre"
	OpUserLoad   Op = "load user"

	// Secondary data
	OpMetaLoad     Op = "load details"
	OpRatingLoad   Op = "load rating"
	OpCrossRefLoad Op = "load genre members"
	OpCoverLoad    Op = "load cover art"
	OpLyricsLoad   Op = "load lyrics"
	OpSimilarLoad  Op = "load similar artists"

	// Comments
	OpCommentsLoad  Op = "load comments"
	OpCommentPost   Op = "post comment"
	OpCommentDelete Op = "delete comment"

	// Search
	OpSearch Op = "search"

	// Session
	OpLogin       Op = "log in"
	OpLogout      Op = "log out"
	OpSessionLoad Op = "restore session"

	// Persisted state
	OpSettingsLoad Op = "load view settings"
	OpSettingsSave Op = "save view settings"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
