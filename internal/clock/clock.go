// Package clock supplies "now" in the fixed civil time used for every stored timestamp.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant in the application's civil zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Civil is a Clock pinned to a fixed offset from UTC (no daylight saving).
type Civil struct {
	loc *time.Location
}

// NewCivil builds a Civil clock for the given offset east of UTC.
func NewCivil(offset time.Duration) *Civil {
	return &Civil{loc: Zone(offset)}
}

func (c *Civil) Now() time.Time { return time.Now().In(c.loc) }

func (c *Civil) Location() *time.Location { return c.loc }

// Zone returns a fixed zone for the offset, named like "UTC+03:00".
func Zone(offset time.Duration) *time.Location {
	sign := "+"
	secs := int(offset / time.Second)
	abs := secs
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	name := "UTC" + sign + twoDigits(abs/3600) + ":" + twoDigits((abs%3600)/60)
	return time.FixedZone(name, secs)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

// Manual is a Clock whose time only moves when told to. Used by tests and tooling.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual starts a Manual clock at t; t's location becomes the civil zone.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Location() *time.Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Location()
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d (backwards when d is negative).
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
