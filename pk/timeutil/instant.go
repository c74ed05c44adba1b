package timeutil

import (
	"fmt"
	"time"
)

// Instant is a point in civil time with at least second resolution. It
// wraps time.Time so that calendar-correct month/year arithmetic (handled
// by the standard library) is available alongside the uniform day/hour/
// minute/second arithmetic the extraction pipeline also needs.
type Instant struct {
	t time.Time
}

// NewInstant constructs an Instant from calendar fields, in UTC. Go's
// time.Date normalizes out-of-range components (e.g. month 13 rolls into
// the next year) rather than rejecting them; callers that need strict
// validation should check components before calling NewInstant.
func NewInstant(year, month, day, hour, minute, second int) Instant {
	return Instant{t: time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)}
}

// FromTime wraps a time.Time as an Instant, normalizing to UTC and
// truncating to whole seconds.
func FromTime(t time.Time) Instant {
	return Instant{t: t.UTC().Truncate(time.Second)}
}

// Time returns the underlying time.Time value.
func (i Instant) Time() time.Time { return i.t }

// Before reports whether i occurs strictly before o.
func (i Instant) Before(o Instant) bool { return i.t.Before(o.t) }

// After reports whether i occurs strictly after o.
func (i Instant) After(o Instant) bool { return i.t.After(o.t) }

// Equal reports whether i and o denote the same instant.
func (i Instant) Equal(o Instant) bool { return i.t.Equal(o.t) }

// Compare returns -1, 0, or 1 as i is before, equal to, or after o.
func (i Instant) Compare(o Instant) int {
	switch {
	case i.t.Before(o.t):
		return -1
	case i.t.After(o.t):
		return 1
	default:
		return 0
	}
}

// Sub returns the Duration between o and i (i - o), expressed in Seconds.
func (i Instant) Sub(o Instant) Duration {
	return Duration{Unit: Seconds, Count: int64(i.t.Sub(o.t) / time.Second)}
}

// Add returns i advanced by d. Seconds/Minutes/Hours/Days are uniform spans;
// Months/Years honor calendar semantics via time.AddDate (variable-length
// months, leap years).
func (i Instant) Add(d Duration) Instant {
	switch d.Unit {
	case Seconds:
		return Instant{t: i.t.Add(time.Duration(d.Count) * time.Second)}
	case Minutes:
		return Instant{t: i.t.Add(time.Duration(d.Count) * time.Minute)}
	case Hours:
		return Instant{t: i.t.Add(time.Duration(d.Count) * time.Hour)}
	case Days:
		return Instant{t: i.t.AddDate(0, 0, int(d.Count))}
	case Months:
		return Instant{t: i.t.AddDate(0, int(d.Count), 0)}
	case Years:
		return Instant{t: i.t.AddDate(int(d.Count), 0, 0)}
	default:
		return i
	}
}

// ToSeconds returns a 64-bit count of seconds since the Unix epoch, used
// for interpolation arithmetic (see the covariate package's interpolateAt),
// for keying instant sets, and for the seconds representation of Date
// values.
func (i Instant) ToSeconds() int64 { return i.t.Unix() }

// MinInstant returns the minimum representable Instant — Go's zero
// time.Time, year 1 — used to stamp population-only parameter extraction,
// which has no real window to anchor to.
func MinInstant() Instant {
	return Instant{t: time.Time{}}
}

// FromSeconds reconstructs an Instant from a Unix second count, the inverse
// of ToSeconds. Used to round-trip Date-typed covariate values, which are
// carried internally as float64 seconds (see drugmodel.ParseTypedValue).
func FromSeconds(sec int64) Instant {
	return Instant{t: time.Unix(sec, 0).UTC()}
}

// Year, Month, Day, Hour, Minute, Second return the civil calendar fields.
func (i Instant) Year() int   { return i.t.Year() }
func (i Instant) Month() int  { return int(i.t.Month()) }
func (i Instant) Day() int    { return i.t.Day() }
func (i Instant) Hour() int   { return i.t.Hour() }
func (i Instant) Minute() int { return i.t.Minute() }
func (i Instant) Second() int { return i.t.Second() }

// String returns an ISO-8601-like representation, seconds precision.
func (i Instant) String() string {
	return i.t.Format("2006-01-02T15:04:05Z")
}

// DaysBetween returns the civil-calendar day difference to - from,
// counting whole calendar days elapsed between the two instants' midnights
// in UTC — not an average-day-count division of the raw duration.
func DaysBetween(from, to Instant) int64 {
	fy, fm, fd := from.t.Date()
	ty, tm, td := to.t.Date()
	fromMidnight := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	toMidnight := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int64(toMidnight.Sub(fromMidnight) / (24 * time.Hour))
}

// MonthsBetween returns the civil-calendar whole-month difference between
// from and to: the number of times from's day-of-month has rolled over
// moving forward to to, ignoring any partial trailing month.
func MonthsBetween(from, to Instant) int64 {
	months := int64(to.t.Year()-from.t.Year())*12 + int64(to.t.Month()-from.t.Month())
	if to.t.Day() < from.t.Day() {
		months--
	}
	return months
}

// YearsBetween returns the civil-calendar whole-year difference between
// from and to.
func YearsBetween(from, to Instant) int64 {
	years := int64(to.t.Year() - from.t.Year())
	fromAnniversary := time.Date(to.t.Year(), from.t.Month(), from.t.Day(), from.t.Hour(), from.t.Minute(), from.t.Second(), 0, time.UTC)
	if to.t.Before(fromAnniversary) {
		years--
	}
	return years
}

// GoString supports %#v-style debugging output.
func (i Instant) GoString() string {
	return fmt.Sprintf("timeutil.FromTime(%q)", i.t.Format(time.RFC3339))
}
