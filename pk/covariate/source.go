package covariate

import (
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// valuedSource produces the time-varying value of one valued covariate
// (Standard, Sex, Dose, or an AgeIn*/TimeFromStartIn* derivation) and the
// instants at which it must be re-examined (spec section 4.4.6). Only
// instants in a source's own candidateInstants are considered for that
// covariate — a covariate never emits at another covariate's refresh
// instant merely because the global pass is walking it.
type valuedSource interface {
	initialValue() (float64, error)
	valueAt(t timeutil.Instant) (float64, error)
	candidateInstants(start, end timeutil.Instant) []timeutil.Instant
}

// obsSource backs Standard/Sex/Dose covariates: a normalized observation
// set, interpolated per the definition's InterpolationType, optionally
// re-sampled on a fixed RefreshPeriod regardless of new observations.
type obsSource struct {
	id            string
	points        []rawObservation // normalized, sorted
	interp        drugmodel.InterpolationType
	refreshPeriod timeutil.Duration
	defaultValue  float64
	hasObs        bool
	start         timeutil.Instant
}

// initialValue implements spec section 4.4.3 at the window's start instant
// — not necessarily points[0].t, since a straddling Linear observation set
// is left in place rather than relocated.
func (s *obsSource) initialValue() (float64, error) {
	if !s.hasObs {
		return s.defaultValue, nil
	}
	return interpolateAt(s.id, s.points, s.start, s.interp)
}

func (s *obsSource) valueAt(t timeutil.Instant) (float64, error) {
	if !s.hasObs {
		return s.defaultValue, nil
	}
	return interpolateAt(s.id, s.points, t, s.interp)
}

func (s *obsSource) candidateInstants(start, end timeutil.Instant) []timeutil.Instant {
	var out []timeutil.Instant
	for _, p := range s.points {
		if p.t.After(start) && p.t.Before(end) {
			out = append(out, p.t)
		}
	}
	out = append(out, periodicTicks(start, end, s.refreshPeriod)...)
	return dedupInstants(out)
}

// ageGranularity names the time unit an AgeIn*/TimeFromStartIn* category
// steps by, both for its derived value and its natural refresh cadence
// (spec section 4.4.5 / 6.3).
type ageGranularity int

const (
	granDays ageGranularity = iota
	granWeeks
	granMonths
	granYears
	granHours
)

// diff returns the granular difference between origin and t.
func (g ageGranularity) diff(origin, t timeutil.Instant) float64 {
	switch g {
	case granDays:
		return float64(timeutil.DaysBetween(origin, t))
	case granWeeks:
		return float64(timeutil.DaysBetween(origin, t)) / 7
	case granMonths:
		return float64(timeutil.MonthsBetween(origin, t))
	case granYears:
		return float64(timeutil.YearsBetween(origin, t))
	case granHours:
		return float64(t.ToSeconds()-origin.ToSeconds()) / 3600
	default:
		return 0
	}
}

// cadence returns the natural refresh step for this granularity.
func (g ageGranularity) cadence() timeutil.Duration {
	switch g {
	case granDays:
		return timeutil.NewDuration(timeutil.Days, 1)
	case granWeeks:
		return timeutil.NewDuration(timeutil.Days, 7)
	case granMonths:
		return timeutil.NewDuration(timeutil.Months, 1)
	case granYears:
		return timeutil.NewDuration(timeutil.Years, 1)
	case granHours:
		return timeutil.NewDuration(timeutil.Hours, 1)
	default:
		return timeutil.Duration{}
	}
}

func granularityOf(c drugmodel.Category) ageGranularity {
	switch c {
	case drugmodel.AgeInDays, drugmodel.TimeFromStartInDays:
		return granDays
	case drugmodel.AgeInWeeks, drugmodel.TimeFromStartInWeeks:
		return granWeeks
	case drugmodel.AgeInMonths, drugmodel.TimeFromStartInMonths:
		return granMonths
	case drugmodel.AgeInYears, drugmodel.TimeFromStartInYears:
		return granYears
	case drugmodel.TimeFromStartInHours:
		return granHours
	default:
		return granDays
	}
}

// ageTimeSource backs an AgeIn*/TimeFromStartIn* covariate (spec section
// 4.4.5). In "derived" mode the value is origin's granular distance to t
// (birthdate for Age categories with a supplied birthdate; treatment-start,
// or start absent that, for TimeFromStart categories). In "offset" mode
// (Age categories with no birthdate) the value is the definition's default
// plus the granular distance from start.
type ageTimeSource struct {
	gran          ageGranularity
	origin        timeutil.Instant
	derived       bool
	offsetBase    float64
	start         timeutil.Instant
	refreshPeriod timeutil.Duration
}

func (s *ageTimeSource) initialValue() (float64, error) {
	return s.valueAt(s.start)
}

func (s *ageTimeSource) valueAt(t timeutil.Instant) (float64, error) {
	if s.derived {
		return s.gran.diff(s.origin, t), nil
	}
	return s.offsetBase + s.gran.diff(s.start, t), nil
}

func (s *ageTimeSource) candidateInstants(start, end timeutil.Instant) []timeutil.Instant {
	out := cadenceTicks(start, end, s.gran.cadence())
	out = append(out, periodicTicks(start, end, s.refreshPeriod)...)
	return dedupInstants(out)
}

// periodicTicks returns start + k*period for k >= 1 while the result is
// strictly before end (tightened per the redesigned strict-<end bound for
// every granularity, not only hour-grained time-from-start).
func periodicTicks(start, end timeutil.Instant, period timeutil.Duration) []timeutil.Instant {
	if period.IsEmpty() {
		return nil
	}
	var out []timeutil.Instant
	next := start.Add(period)
	for next.Before(end) {
		out = append(out, next)
		next = next.Add(period)
	}
	return out
}

// cadenceTicks is periodicTicks specialized for a non-empty cadence
// duration (age/time-from-start categories always carry one).
func cadenceTicks(start, end timeutil.Instant, cadence timeutil.Duration) []timeutil.Instant {
	return periodicTicks(start, end, cadence)
}

// buildSource constructs the valuedSource for one valued definition,
// dispatching on its Category (spec section 4.4.5 for Age/TimeFromStart,
// 4.4.1-4.4.2 otherwise).
func buildSource(d *drugmodel.CovariateDefinition, obs []rawObservation, birthdate timeutil.Instant, hasBirthdate bool, treatmentStart, start, end timeutil.Instant) (valuedSource, error) {
	switch {
	case d.Category.IsAge():
		if hasBirthdate {
			if birthdate.After(start) {
				return nil, &ErrInvalidInput{Reason: "birthdate " + d.ID + " post-dates the extraction window start"}
			}
			return &ageTimeSource{
				gran: granularityOf(d.Category), origin: birthdate, derived: true,
				start: start, refreshPeriod: d.RefreshPeriod,
			}, nil
		}
		def, err := drugmodel.ParseDefault(d)
		if err != nil {
			return nil, &ErrInvalidInput{Reason: err.Error()}
		}
		return &ageTimeSource{
			gran: granularityOf(d.Category), origin: start, derived: false, offsetBase: def,
			start: start, refreshPeriod: d.RefreshPeriod,
		}, nil

	case d.Category.IsTimeFromStart():
		return &ageTimeSource{
			gran: granularityOf(d.Category), origin: treatmentStart, derived: true,
			start: start, refreshPeriod: d.RefreshPeriod,
		}, nil

	default:
		def, err := drugmodel.ParseDefault(d)
		if err != nil {
			return nil, &ErrInvalidInput{Reason: err.Error()}
		}
		normalized := normalizeObservations(obs, start, end, d.Interpolation)
		return &obsSource{
			id: d.ID, points: normalized, interp: d.Interpolation,
			refreshPeriod: d.RefreshPeriod, defaultValue: def, hasObs: len(normalized) > 0,
			start: start,
		}, nil
	}
}

// dedupInstants sorts and removes exact duplicates (spec section 6.3: exact
// instant equality after whole-second truncation — Instant already carries
// only whole-second resolution).
func dedupInstants(in []timeutil.Instant) []timeutil.Instant {
	if len(in) == 0 {
		return in
	}
	sorted := append([]timeutil.Instant(nil), in...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Before(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	out := sorted[:1]
	for _, t := range sorted[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}
