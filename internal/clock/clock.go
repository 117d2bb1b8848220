package clock

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock provides the current instant in the business timezone. Everything
// time-sensitive (cancellation windows, check-in stamps, the no-show sweep)
// takes a Clock instead of reading the wall clock inline.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type businessClock struct {
	loc *time.Location
}

// New returns a Clock pinned to tz, falling back to America/Sao_Paulo when
// tz is empty or unknown.
func New(tz string) Clock {
	return &businessClock{loc: LocationFor(tz)}
}

func (c *businessClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *businessClock) Location() *time.Location {
	return c.loc
}

func LocationFor(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Location() *time.Location {
	return f.Instant.Location()
}
