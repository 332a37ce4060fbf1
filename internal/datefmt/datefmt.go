// Package datefmt renders stored calendar dates in the fixed display form
// returned by the API.
package datefmt

import "time"

// Layout is the display form: zero-padded year/month/day.
const Layout = "2006/01/02"

// Format renders t as "YYYY/MM/DD" using t's own calendar fields.
// The location attached to t is kept as-is; converting to UTC or local time
// could shift the day for values stored at midnight in another zone.
// A nil t yields nil.
func Format(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(Layout)
	return &s
}

// String is Format for non-optional dates.
func String(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a value previously produced by Format back into a time.Time at
// midnight UTC.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}
