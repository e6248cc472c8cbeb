package lyrics

import (
	"strings"
	"testing"
	"time"
)

func TestParseLRC_Basic(t *testing.T) {
	lrc := `[ar:Test Artist]
[ti:Test Title]
[al:Test Album]
[00:12.34]First line
[00:15.67]Second line
[00:20.00]Third line`

	lyrics, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}

	if lyrics.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", lyrics.Artist, "Test Artist")
	}
	if lyrics.Title != "Test Title" {
		t.Errorf("Title = %q, want %q", lyrics.Title, "Test Title")
	}
	if lyrics.Album != "Test Album" {
		t.Errorf("Album = %q, want %q", lyrics.Album, "Test Album")
	}

	if len(lyrics.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(lyrics.Lines))
	}

	expected := []Line{
		{12*time.Second + 340*time.Millisecond, "First line"},
		{15*time.Second + 670*time.Millisecond, "Second line"},
		{20 * time.Second, "Third line"},
	}
	for i, exp := range expected {
		if lyrics.Lines[i] != exp {
			t.Errorf("Lines[%d] = %+v, want %+v", i, lyrics.Lines[i], exp)
		}
	}
	if !lyrics.IsSynced() {
		t.Error("IsSynced() = false, want true")
	}
}

func TestParseLRC_MultipleTimestamps(t *testing.T) {
	lrc := `[01:30.00][00:30.00]Chorus line
[01:00.00]Verse`

	lyrics, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}

	want := []string{"Chorus line", "Verse", "Chorus line"}
	got := lyrics.Text()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Text() = %v, want %v", got, want)
	}
	if lyrics.Lines[0].Time != 30*time.Second || lyrics.Lines[2].Time != 90*time.Second {
		t.Errorf("lines not sorted by time: %+v", lyrics.Lines)
	}
}

func TestParseLRC_TimestampFormats(t *testing.T) {
	lrc := `[00:10]No fraction
[00:30.50]Centiseconds
[00:40.500]Milliseconds
[01:00:00]Colon separator`

	lyrics, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}

	want := []time.Duration{
		10 * time.Second,
		30*time.Second + 500*time.Millisecond,
		40*time.Second + 500*time.Millisecond,
		time.Minute,
	}
	if len(lyrics.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(lyrics.Lines), len(want))
	}
	for i, w := range want {
		if lyrics.Lines[i].Time != w {
			t.Errorf("Lines[%d].Time = %v, want %v", i, lyrics.Lines[i].Time, w)
		}
	}
}

func TestParse_PlainText(t *testing.T) {
	text := "First verse\n\n  Second verse  \r\nLast"

	lyrics := Parse(text)

	got := lyrics.Text()
	want := []string{"First verse", "Second verse", "Last"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Text() = %v, want %v", got, want)
	}
	if lyrics.IsSynced() {
		t.Error("plain lyrics should not be synced")
	}
}

func TestParse_LRCText(t *testing.T) {
	lyrics := Parse("[ti:Song]\n[00:01.00]Hello\n[00:02.00]World")

	if lyrics.Title != "Song" {
		t.Errorf("Title = %q, want Song", lyrics.Title)
	}
	if got := strings.Join(lyrics.Text(), " "); got != "Hello World" {
		t.Errorf("Text() = %q, want %q", got, "Hello World")
	}
}

func TestEmpty(t *testing.T) {
	var nilLyrics *Lyrics
	if !nilLyrics.Empty() {
		t.Error("nil lyrics should be empty")
	}
	if !Parse("  \n \n").Empty() {
		t.Error("blank text should parse to empty lyrics")
	}
	if Parse("la").Empty() {
		t.Error("one line should not be empty")
	}
}
