// Package timeutil provides the civil-time and duration primitives the PK
// core builds its temporal reasoning on: Instant (a point in civil time with
// second resolution) and Duration (a span expressed in one of seconds,
// minutes, hours, days, months, or years).
//
// Calendar-correct arithmetic matters here: month and year steps follow the
// civil calendar rather than a fixed number of seconds, and a year
// difference must be computed from civil calendar fields rather than from
// an average day count. Instant wraps time.Time and applies month/year
// steps through AddDate, which normalizes a day missing from the target
// month into the next month (January 31st plus one month is March 2nd in a
// leap year). It adds the day/hour/minute/second uniform arithmetic and the
// civil-calendar diff helpers (DaysBetween, MonthsBetween, YearsBetween)
// that the covariate extractor needs for refresh cadences and age synthesis.
package timeutil
