// Package period turns a named reporting period into a concrete time window.
package period

import (
	"fmt"
	"strings"
	"time"
)

const (
	Today  = "today"
	Week   = "week"
	Month  = "month"
	Custom = "custom"
	All    = "all"
)

// DateLayout is the calendar date format accepted for custom ranges.
const DateLayout = "2006-01-02"

// Window is an inclusive [Start, End] range. A nil bound means unbounded on that side.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether the window restricts anything.
func (w Window) Bounded() bool {
	return w.Start != nil || w.End != nil
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Resolve maps a period name to a window relative to now. now's location is the civil zone.
//
//	today  -> local midnight .. 23:59:59.999999999
//	week   -> now-7d .. now
//	month  -> now-30d .. now
//	custom -> startDate 00:00 .. endDate 23:59:59.999999999 (end day inclusive)
//	other  -> unbounded
//
// A custom period missing either date is unbounded; a malformed date is an error.
func Resolve(now time.Time, name, startDate, endDate string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Today:
		start := StartOfDay(now)
		end := EndOfDay(now)
		return Window{Start: &start, End: &end}, nil
	case Week:
		start := now.AddDate(0, 0, -7)
		end := now
		return Window{Start: &start, End: &end}, nil
	case Month:
		start := now.AddDate(0, 0, -30)
		end := now
		return Window{Start: &start, End: &end}, nil
	case Custom:
		if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
			return Window{}, nil
		}
		start, err := ParseDate(startDate, now.Location())
		if err != nil {
			return Window{}, err
		}
		endDay, err := ParseDate(endDate, now.Location())
		if err != nil {
			return Window{}, err
		}
		end := EndOfDay(endDay)
		if end.Before(start) {
			return Window{}, fmt.Errorf("start_date must not be after end_date")
		}
		return Window{Start: &start, End: &end}, nil
	default:
		return Window{}, nil
	}
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
