package covariate

import (
	"math"
	"sort"

	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/graph"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/treatment"
	"github.com/go-pkcore/pkcore/pk/unit"
)

const valueChangeEpsilon = 1e-9

// Extract runs the full Covariate Extractor (spec section 4.4) over defs
// and tr's patient observations and intake history, returning the
// covariate event series valid over [start, end]. On any failure it
// returns a nil Series — partial series are never delivered (spec section
// 4.4.8).
func Extract(defs drugmodel.Definitions, tr *treatment.DrugTreatment, start, end timeutil.Instant) (Series, error) {
	if defs == nil {
		return nil, &ErrInvalidInput{Reason: "nil definitions"}
	}
	if tr == nil {
		return nil, &ErrInvalidInput{Reason: "nil treatment"}
	}
	if end.Before(start) {
		return nil, &ErrInvalidInput{Reason: "end precedes start"}
	}
	if err := defs.ValidateNoDuplicateCategories(); err != nil {
		return nil, &ErrInvalidInput{Reason: err.Error()}
	}

	treatmentStart := start
	if ts, ok := tr.Intakes.FirstStart(); ok {
		treatmentStart = ts
	}
	birthdate, hasBirthdate := tr.Birthdate()

	obsByID, err := groupPatientObservations(defs, tr)
	if err != nil {
		return nil, err
	}

	var valuedIDs, computedIDs []string
	sources := make(map[string]valuedSource)
	byID := defs.ByID()

	for _, d := range defs {
		if d.IsComputed() {
			computedIDs = append(computedIDs, d.ID)
			continue
		}
		valuedIDs = append(valuedIDs, d.ID)

		src, err := buildSource(d, obsByID[d.ID], birthdate, hasBirthdate, treatmentStart, start, end)
		if err != nil {
			return nil, err
		}
		sources[d.ID] = src
	}
	sort.Strings(valuedIDs)
	sort.Strings(computedIDs)

	manager := graph.NewManager()
	handles := make(map[string]*graph.ScalarHandle, len(valuedIDs)+len(computedIDs))
	lastValue := make(map[string]float64, len(valuedIDs)+len(computedIDs))

	var series Series

	for _, id := range valuedIDs {
		initial, err := sources[id].initialValue()
		if err != nil {
			return nil, err
		}
		h := graph.NewInputHandle(initial)
		if err := manager.RegisterInput(id, h); err != nil {
			return nil, err
		}
		handles[id] = h
		lastValue[id] = initial
		series = append(series, Event{CovariateID: id, EventTime: start, Value: initial})
	}

	for _, id := range computedIDs {
		d := byID[id]
		h := graph.NewOperableHandle(d.Operation, 0)
		if err := manager.RegisterOperable(id, h); err != nil {
			return nil, err
		}
		handles[id] = h
	}

	if len(computedIDs) > 0 {
		if err := manager.Evaluate(); err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}
		for _, id := range computedIDs {
			v, _ := manager.GetValue(id)
			lastValue[id] = v
			series = append(series, Event{CovariateID: id, EventTime: start, Value: v})
		}
	}

	instantSets := make(map[string]map[int64]bool, len(valuedIDs))
	var globalInstants []timeutil.Instant
	for _, id := range valuedIDs {
		cand := sources[id].candidateInstants(start, end)
		set := make(map[int64]bool, len(cand))
		for _, t := range cand {
			set[t.ToSeconds()] = true
		}
		instantSets[id] = set
		globalInstants = append(globalInstants, cand...)
	}
	globalInstants = dedupInstants(globalInstants)

	for _, instant := range globalInstants {
		sec := instant.ToSeconds()
		for _, id := range valuedIDs {
			if !instantSets[id][sec] {
				continue
			}
			v, err := sources[id].valueAt(instant)
			if err != nil {
				return nil, err
			}
			if math.Abs(v-lastValue[id]) <= valueChangeEpsilon {
				continue
			}
			handles[id].SetValue(v)
			lastValue[id] = v
			series = append(series, Event{CovariateID: id, EventTime: instant, Value: v})
		}

		if len(computedIDs) > 0 {
			if err := manager.Evaluate(); err != nil {
				return nil, &ErrEvaluation{Cause: err}
			}
			for _, id := range computedIDs {
				v, _ := manager.GetValue(id)
				if math.Abs(v-lastValue[id]) <= valueChangeEpsilon {
					continue
				}
				lastValue[id] = v
				series = append(series, Event{CovariateID: id, EventTime: instant, Value: v})
			}
		}
	}

	sort.Stable(series)
	return series, nil
}

// groupPatientObservations converts every patient covariate observation
// into its definition's unit, grouped by covariate ID. Observations whose
// ID names no known definition are ignored (the treatment is free to carry
// covariates this drug model doesn't declare). Dose-category definitions
// with no explicit observations are backfilled from the intake history
// (SPEC_FULL.md section C.2).
func groupPatientObservations(defs drugmodel.Definitions, tr *treatment.DrugTreatment) (map[string][]rawObservation, error) {
	byID := defs.ByID()
	out := make(map[string][]rawObservation)

	for _, pv := range tr.Covariates {
		d, ok := byID[pv.ID]
		if !ok {
			continue
		}
		raw, err := drugmodel.ParseTypedValue(pv.Value, d.DataType)
		if err != nil {
			return nil, &ErrInvalidInput{Reason: err.Error()}
		}
		converted, err := convertObservationUnit(raw, pv.Unit, d)
		if err != nil {
			return nil, err
		}
		out[pv.ID] = append(out[pv.ID], rawObservation{t: pv.EventTime, value: converted})
	}

	for _, d := range defs {
		if d.Category != drugmodel.Dose || d.IsComputed() || len(out[d.ID]) > 0 {
			continue
		}
		if len(tr.Intakes) == 0 {
			continue
		}
		synth, err := DoseVariatesFromIntakes(tr.Intakes, d.Unit)
		if err != nil {
			return nil, &ErrInvalidInput{Reason: err.Error()}
		}
		out[d.ID] = synth
	}

	return out, nil
}

// convertObservationUnit converts a parsed raw value from its observation's
// unit to the definition's declared unit. Int-typed covariates are
// converted along the same Double path and then rounded to the nearest
// integer (SPEC_FULL.md section D, decision 1 on the source's ambiguous
// Int conversion behavior).
func convertObservationUnit(raw float64, from unit.Unit, d *drugmodel.CovariateDefinition) (float64, error) {
	if from.IsDimensionless() && d.Unit.IsDimensionless() {
		return raw, nil
	}
	converted, err := unit.Convert(raw, from, d.Unit)
	if err != nil {
		return 0, &ErrInvalidInput{Reason: err.Error()}
	}
	if d.DataType == drugmodel.Int {
		converted = math.Round(converted)
	}
	return converted, nil
}
