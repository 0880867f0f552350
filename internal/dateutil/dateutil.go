// Package dateutil provides calendar arithmetic on YYYY-MM-DD date
// strings. All math is anchored to UTC so adding days is never subject
// to DST shifts; only Today consults a timezone.
package dateutil

import "time"

const layout = "2006-01-02"

// AddDays returns the calendar date n days after date. It panics only
// via the zero time if date is malformed; use Valid to check input that
// crosses a trust boundary.
func AddDays(date string, n int) string {
	t, err := time.ParseInLocation(layout, date, time.UTC)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(layout)
}

// Compare returns -1, 0 or 1 ordering two calendar dates. Zero-padded
// ISO dates order correctly as plain strings.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Valid reports whether s is a well-formed YYYY-MM-DD calendar date.
func Valid(s string) bool {
	_, err := time.ParseInLocation(layout, s, time.UTC)
	return err == nil
}

// Today returns the current calendar date in the given location.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format(layout)
}

// FormatDate renders a time as a calendar date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(layout)
}
