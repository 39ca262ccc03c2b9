// Package biztime keeps every stored timestamp in UTC and formats it for display.
package biztime

import "time"

// DisplayLayout is the layout used in rendered pages.
const DisplayLayout = "2006-01-02 15:04"

// Clock yields the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Format renders t in loc, or an empty string for a nil pointer.
func Format(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}
