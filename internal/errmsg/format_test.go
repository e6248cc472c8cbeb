//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpArtistsLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpArtistsLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load artists: connection refused",
		},
		{
			name:     "comment operation",
			op:       OpCommentPost,
			err:      errors.New("not authenticated"),
			expected: "Failed to post comment: not authenticated",
		},
		{
			name:     "login operation",
			op:       OpLogin,
			err:      errors.New("API returned status 401: Incorrect username or password"),
			expected: "Failed to log in: API returned status 401: Incorrect username or password",
		},
		{
			name:     "search operation",
			op:       OpSearch,
			err:      errors.New("timeout"),
			expected: "Failed to search: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpAlbumLoad,
			context:  "b1",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpAlbumLoad,
			context:  "b1",
			err:      errors.New("not found"),
			expected: "Failed to load album 'b1': not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpAlbumLoad,
			context:  "",
			err:      errors.New("not found"),
			expected: "Failed to load album: not found",
		},
		{
			name:     "lyrics with song name context",
			op:       OpLyricsLoad,
			context:  "Rain",
			err:      errors.New("no match"),
			expected: "Failed to load lyrics 'Rain': no match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpArtistsLoad, OpAlbumsLoad, OpSongsLoad, OpGenresLoad, OpHomeLoad,
		OpArtistLoad, OpAlbumLoad, OpSongLoad, OpGenreLoad, OpUserLoad,
		OpMetaLoad, OpRatingLoad, OpCrossRefLoad, OpCoverLoad, OpLyricsLoad, OpSimilarLoad,
		OpCommentsLoad, OpCommentPost, OpCommentDelete,
		OpSearch,
		OpLogin, OpLogout, OpSessionLoad,
		OpSettingsLoad, OpSettingsSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
