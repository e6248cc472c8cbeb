// Package lyrics parses song lyrics and looks them up across the catalog, a
// local cache and lrclib.net.
package lyrics

import (
	"bufio"
	"cmp"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Line is one lyric line. Time is zero for unsynced lyrics.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics holds parsed lyrics and any metadata tags found in them.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
}

var (
	// [mm:ss], [mm:ss.xx], [mm:ss.xxx] or [mm:ss:xx]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)

	// [ar:Artist], [ti:Title], ...
	tagRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// Parse reads lyrics stored as catalog text, which may be LRC or plain
// lines. Blank lines are dropped.
func Parse(text string) *Lyrics {
	if timestampRe.MatchString(text) {
		if l, err := ParseLRC(strings.NewReader(text)); err == nil && len(l.Lines) > 0 {
			return l
		}
	}
	l := &Lyrics{}
	for line := range strings.SplitSeq(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			l.Lines = append(l.Lines, Line{Text: line})
		}
	}
	return l
}

// ParseLRC parses LRC lyrics. Lines repeated under several timestamps are
// expanded; the result is ordered by time.
func ParseLRC(r io.Reader) (*Lyrics, error) {
	l := &Lyrics{}
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		if tag := tagRe.FindStringSubmatch(raw); tag != nil {
			value := strings.TrimSpace(tag[2])
			switch strings.ToLower(tag[1]) {
			case "ar":
				l.Artist = value
			case "ti":
				l.Title = value
			case "al":
				l.Album = value
			}
			continue
		}

		stamps := timestampRe.FindAllStringSubmatch(raw, -1)
		if len(stamps) == 0 {
			continue
		}
		locs := timestampRe.FindAllStringIndex(raw, -1)
		text := strings.TrimSpace(raw[locs[len(locs)-1][1]:])

		for _, m := range stamps {
			ts, ok := timestamp(m)
			if !ok {
				continue
			}
			l.Lines = append(l.Lines, Line{Time: ts, Text: text})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(l.Lines, func(a, b Line) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return l, nil
}

// timestamp converts a timestampRe submatch to a duration.
func timestamp(m []string) (time.Duration, bool) {
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	var millis int
	if frac := m[3]; frac != "" {
		if millis, err = strconv.Atoi(frac); err != nil {
			return 0, false
		}
		// .xx is centiseconds
		if len(frac) == 2 {
			millis *= 10
		}
	}
	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, true
}

// IsSynced reports whether any line carries a timestamp.
func (l *Lyrics) IsSynced() bool {
	return slices.ContainsFunc(l.Lines, func(line Line) bool { return line.Time > 0 })
}

// Text returns the lyric lines without timestamps.
func (l *Lyrics) Text() []string {
	out := make([]string, 0, len(l.Lines))
	for _, line := range l.Lines {
		out = append(out, line.Text)
	}
	return out
}

// Empty reports whether there is nothing to show.
func (l *Lyrics) Empty() bool {
	return l == nil || len(l.Lines) == 0
}
