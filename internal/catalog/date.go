package catalog

import (
	"strings"
	"time"
)

// DatePrecision indicates the granularity of a date string.
type DatePrecision int

const (
	PrecisionNone  DatePrecision = iota // No date or invalid
	PrecisionYear                       // "2024"
	PrecisionMonth                      // "2024-05"
	PrecisionDay                        // "2024-05-15"
)

// ParseDatePrecision returns the precision level of a date string.
// Timestamps ("2024-05-15T10:00:00") count as day precision.
func ParseDatePrecision(date string) DatePrecision {
	date = trimTime(date)
	switch len(date) {
	case 4:
		return PrecisionYear
	case 7:
		return PrecisionMonth
	case 10:
		return PrecisionDay
	default:
		return PrecisionNone
	}
}

// ParseDate parses a date string with variable precision.
func ParseDate(date string) (time.Time, DatePrecision) {
	date = trimTime(date)
	precision := ParseDatePrecision(date)
	var t time.Time
	var err error

	switch precision {
	case PrecisionNone:
		return time.Time{}, PrecisionNone
	case PrecisionDay:
		t, err = time.Parse("2006-01-02", date)
	case PrecisionMonth:
		t, err = time.Parse("2006-01", date)
	case PrecisionYear:
		t, err = time.Parse("2006", date)
	}

	if err != nil {
		return time.Time{}, PrecisionNone
	}
	return t, precision
}

func trimTime(date string) string {
	if i := strings.IndexByte(date, 'T'); i == 10 {
		return date[:i]
	}
	return strings.TrimSpace(date)
}

// Year returns the album's release year, or 0 if the date is unknown.
func (a Album) Year() int {
	t, precision := ParseDate(a.ReleaseDate)
	if precision == PrecisionNone {
		return 0
	}
	return t.Year()
}

// Released returns the parsed release date and whether it was valid.
func (a Album) Released() (time.Time, bool) {
	t, precision := ParseDate(a.ReleaseDate)
	return t, precision != PrecisionNone
}
