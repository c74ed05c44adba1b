package treatment

import (
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/unit"
)

// PatientCovariate is a single measured observation of a covariate (spec
// section 3). Multiple observations may share an ID — one per measurement
// of that physical quantity over time.
type PatientCovariate struct {
	ID        string
	Value     string
	DataType  drugmodel.DataType
	Unit      unit.Unit
	EventTime timeutil.Instant
}

// PatientVariates is the patient's full set of measured observations, as
// supplied by the treatment.
type PatientVariates []*PatientCovariate

// IntakeEvent is the minimal shape of a dose administration the core needs
// from the (out-of-scope) intake extraction pipeline: its start instant and
// the administered dose amount, in the treatment's dosing unit.
type IntakeEvent struct {
	StartTime timeutil.Instant
	Dose      float64
	Unit      unit.Unit
}

// IntakeSeries is a time-ordered list of intake events, as produced by the
// (out-of-scope) intake extractor and consumed here only to locate the
// treatment's start instant and, optionally, to synthesize Dose-category
// patient variates (SPEC_FULL.md section C.2).
type IntakeSeries []IntakeEvent

// FirstStart returns the instant of the earliest intake in the series. The
// covariate extractor uses this as the origin for TimeFromStartIn*
// categories, falling back to the extraction window's start when the
// series is empty (spec section 4.4.5 / SPEC_FULL.md section C.2a).
func (s IntakeSeries) FirstStart() (timeutil.Instant, bool) {
	if len(s) == 0 {
		return timeutil.Instant{}, false
	}
	earliest := s[0].StartTime
	for _, ev := range s[1:] {
		if ev.StartTime.Before(earliest) {
			earliest = ev.StartTime
		}
	}
	return earliest, true
}

// Samples and Targets are adjacent but separable mini-pipelines (spec
// section 1's "Sample/target extraction" Non-goal); DrugTreatment carries
// placeholders for them so downstream callers that do consume them have a
// stable home, but this core never reads their contents.
type Sample struct {
	CovariateID string
	Value       float64
	EventTime   timeutil.Instant
}

type Target struct {
	ParameterID string
	Value       float64
}

// DrugTreatment is the read-only treatment aggregate (spec section 6.1).
type DrugTreatment struct {
	Intakes    IntakeSeries
	Covariates PatientVariates
	Samples    []Sample
	Targets    []Target
}

// HasCovariate reports whether id appears anywhere in the treatment's
// recorded covariates — used by the domain constraints evaluator's
// MandatoryHard presence check (spec section 4.5).
func (t *DrugTreatment) HasCovariate(id string) bool {
	for _, pv := range t.Covariates {
		if pv.ID == id {
			return true
		}
	}
	return false
}

// Birthdate returns the patient's birthdate observation, if any was
// recorded under the conventional "birthdate" ID.
func (t *DrugTreatment) Birthdate() (timeutil.Instant, bool) {
	for _, pv := range t.Covariates {
		if pv.ID == BirthdateCovariateName {
			v, err := drugmodel.ParseTypedValue(pv.Value, drugmodel.Date)
			if err != nil {
				return timeutil.Instant{}, false
			}
			return timeutil.FromSeconds(int64(v)), true
		}
	}
	return timeutil.Instant{}, false
}

// BirthdateCovariateName is the standard covariate ID carrying a patient's
// birth date (mirrors the original extractor's BIRTHDATE_CNAME constant).
const BirthdateCovariateName = "birthdate"
