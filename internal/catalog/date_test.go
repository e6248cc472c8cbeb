package catalog

import (
	"testing"
	"time"
)

func TestParseDatePrecision(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DatePrecision
	}{
		{"empty string", "", PrecisionNone},
		{"year only", "2024", PrecisionYear},
		{"year and month", "2024-05", PrecisionMonth},
		{"full date", "2024-05-15", PrecisionDay},
		{"timestamp", "2024-05-15T08:30:00", PrecisionDay},
		{"invalid short", "24", PrecisionNone},
		{"invalid medium", "2024-5", PrecisionNone},
		{"invalid long", "2024-05-1", PrecisionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDatePrecision(tt.input); got != tt.expected {
				t.Errorf("ParseDatePrecision(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      time.Time
		precision DatePrecision
	}{
		{"full date", "1999-12-31", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), PrecisionDay},
		{"month", "2001-07", time.Date(2001, 7, 1, 0, 0, 0, 0, time.UTC), PrecisionMonth},
		{"year", "1985", time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC), PrecisionYear},
		{"bad day", "2001-13-45", time.Time{}, PrecisionNone},
		{"garbage", "soon", time.Time{}, PrecisionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, precision := ParseDate(tt.input)
			if precision != tt.precision {
				t.Errorf("precision = %v, want %v", precision, tt.precision)
			}
			if !got.Equal(tt.want) {
				t.Errorf("time = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlbumYear(t *testing.T) {
	if y := (Album{ReleaseDate: "2003-04-01"}).Year(); y != 2003 {
		t.Errorf("Year() = %d, want 2003", y)
	}
	if y := (Album{}).Year(); y != 0 {
		t.Errorf("Year() of undated album = %d, want 0", y)
	}
}

func TestCommentTarget(t *testing.T) {
	tests := []struct {
		c      Comment
		target Target
		id     string
	}{
		{Comment{SongID: "s1"}, TargetSong, "s1"},
		{Comment{AlbumID: "a1"}, TargetAlbum, "a1"},
		{Comment{ArtistID: "r1"}, TargetArtist, "r1"},
	}
	for _, tt := range tests {
		if got := tt.c.Target(); got != tt.target {
			t.Errorf("Target() = %q, want %q", got, tt.target)
		}
		if got := tt.c.TargetID(); got != tt.id {
			t.Errorf("TargetID() = %q, want %q", got, tt.id)
		}
	}
}

func TestClampStars(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 5: 5, 9: 5} {
		if got := ClampStars(in); got != want {
			t.Errorf("ClampStars(%d) = %d, want %d", in, got, want)
		}
	}
}
