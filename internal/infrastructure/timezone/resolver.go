// Package timezone converts local calendar dates of the ledger's civil zone into
// absolute instants. The zone has a fixed standard offset and a summer offset in
// force from the last Sunday of March to the last Sunday of October, switching at
// 01:00 UTC on both days.
package timezone

import (
	"time"

	"github.com/iho/budgetledger/internal/domain"
)

// Default offsets of the civil zone: WET in winter, WEST in summer.
const (
	DefaultStandardOffset = 0
	DefaultSummerOffset   = time.Hour
)

const transitionHourUTC = 1

// Resolver is a pure function of its offsets; it never reads the wall clock.
type Resolver struct {
	standard time.Duration
	summer   time.Duration
}

// NewResolver returns a Resolver for the given standard and summer offsets east of UTC.
func NewResolver(standard, summer time.Duration) *Resolver {
	return &Resolver{standard: standard, summer: summer}
}

// Default returns a Resolver with the default offsets.
func Default() *Resolver {
	return NewResolver(DefaultStandardOffset, DefaultSummerOffset)
}

// LastSunday returns the last Sunday of month in year.
func LastSunday(year int, month time.Month) domain.Date {
	last := domain.NewDate(year, month+1, 0)
	back := int(last.Weekday()-time.Sunday+7) % 7
	return last.AddDays(-back)
}

// SummerPeriod returns the UTC instants at which summer time starts and ends in year.
func SummerPeriod(year int) (start, end time.Time) {
	start = LastSunday(year, time.March).UTCMidnight().Add(transitionHourUTC * time.Hour)
	end = LastSunday(year, time.October).UTCMidnight().Add(transitionHourUTC * time.Hour)
	return start, end
}

// OffsetAt returns the offset in force at instant t.
func (r *Resolver) OffsetAt(t time.Time) time.Duration {
	t = t.UTC()
	start, end := SummerPeriod(t.Year())
	if !t.Before(start) && t.Before(end) {
		return r.summer
	}
	return r.standard
}

// Instant converts a local wall-clock time on date d into an absolute instant.
// Wall times skipped by the spring transition resolve with the standard offset,
// and times repeated in autumn resolve to their first (summer) occurrence.
func (r *Resolver) Instant(d domain.Date, hour, minute, sec, nsec int) time.Time {
	wall := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, sec, nsec, time.UTC)

	if t := wall.Add(-r.summer); r.OffsetAt(t) == r.summer {
		return t
	}
	return wall.Add(-r.standard)
}

// DayStart is 00:00:00.000 local on d.
func (r *Resolver) DayStart(d domain.Date) time.Time {
	return r.Instant(d, 0, 0, 0, 0)
}

// DayEnd is 23:59:59.999 local on d.
func (r *Resolver) DayEnd(d domain.Date) time.Time {
	return r.Instant(d, 23, 59, 59, int(999*time.Millisecond))
}

// Range returns the inclusive instant bounds of the local days [from, to].
func (r *Resolver) Range(from, to domain.Date) (time.Time, time.Time) {
	return r.DayStart(from), r.DayEnd(to)
}

// Contains reports whether t falls inside the local days [from, to].
func (r *Resolver) Contains(from, to domain.Date, t time.Time) bool {
	lo, hi := r.Range(from, to)
	return !t.Before(lo) && !t.After(hi)
}

// DateOf returns the local calendar date of instant t.
func (r *Resolver) DateOf(t time.Time) domain.Date {
	local := t.UTC().Add(r.OffsetAt(t))
	return domain.NewDate(local.Date())
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// Today returns the local calendar date at the clock's current instant.
func (r *Resolver) Today(c Clock) domain.Date {
	return r.DateOf(c.Now())
}

// Location returns a fixed zone carrying the offset in force at t, for rendering.
func (r *Resolver) Location(t time.Time) *time.Location {
	off := r.OffsetAt(t)
	name := "STD"
	if off == r.summer && r.summer != r.standard {
		name = "DST"
	}
	return time.FixedZone(name, int(off/time.Second))
}
