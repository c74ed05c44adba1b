package parameter

import (
	"math"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/graph"
	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// valueChangeEpsilon is the threshold below which two parameter values are
// considered unchanged between buckets (spec section 6.4 / 4.6.3).
const valueChangeEpsilon = 1e-9

// Extract implements the Parameters Extractor (C6, spec section 4.6): it
// synthesizes the re-evaluation instants from series, wires every
// population value and first-bucket covariate into a fresh Operable Graph
// Manager, and walks the buckets in order, emitting a delta
// ParameterSetEvent per instant.
func Extract(series covariate.Series, defs drugmodel.ParameterDefinitions, start, end timeutil.Instant) (ParameterSetSeries, error) {
	if end.Before(start) {
		return nil, &ErrInvalidInput{Reason: "end precedes start"}
	}

	buckets := synthesizeBuckets(series, start, end)

	seen := make(map[string]bool, len(buckets[0].values))
	for id := range buckets[0].values {
		seen[id] = true
	}
	for _, b := range buckets[1:] {
		for id := range b.values {
			if !seen[id] {
				return nil, &ErrUnknownCovariate{CovariateID: id}
			}
		}
	}

	mgr := graph.NewManager()

	for _, d := range defs {
		if err := mgr.RegisterInput(d.ID+"_population", graph.NewInputHandle(d.Value)); err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}
	}

	covariateHandles := make(map[string]*graph.ScalarHandle, len(buckets[0].values))
	for id, v := range buckets[0].values {
		h := graph.NewInputHandle(v)
		if err := mgr.RegisterInput(id, h); err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}
		covariateHandles[id] = h
	}

	var computed drugmodel.ParameterDefinitions
	for _, d := range defs {
		if !d.IsComputed() {
			continue
		}
		if err := mgr.RegisterOperable(d.ID, graph.NewOperableHandle(d.Operation, d.Value)); err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}
		computed = append(computed, d)
	}

	if err := mgr.Evaluate(); err != nil {
		return nil, &ErrEvaluation{Cause: err}
	}

	rolling := make(map[string]float64, len(buckets[0].values))
	for id, v := range buckets[0].values {
		rolling[id] = v
	}

	out := make(ParameterSetSeries, 0, len(buckets))
	lastEmitted := make(map[string]float64, len(computed))

	first := ParameterSetEvent{EventTime: buckets[0].at}
	for _, d := range defs {
		if d.IsComputed() {
			continue
		}
		first.Parameters = append(first.Parameters, ParameterEvent{ParameterID: d.ID, Value: d.Value})
	}
	for _, d := range computed {
		v, err := mgr.GetValue(d.ID)
		if err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}
		first.Parameters = append(first.Parameters, ParameterEvent{ParameterID: d.ID, Value: v})
		lastEmitted[d.ID] = v
	}
	first.Covariates = snapshot(rolling)
	out = append(out, first)

	for _, b := range buckets[1:] {
		for id, v := range b.values {
			rolling[id] = v
			if h, ok := covariateHandles[id]; ok {
				h.SetValue(v)
			} else {
				h := graph.NewInputHandle(v)
				if err := mgr.RegisterInput(id, h); err != nil {
					return nil, &ErrEvaluation{Cause: err}
				}
				covariateHandles[id] = h
			}
		}

		if err := mgr.Evaluate(); err != nil {
			return nil, &ErrEvaluation{Cause: err}
		}

		ev := ParameterSetEvent{EventTime: b.at}
		for _, d := range computed {
			v, err := mgr.GetValue(d.ID)
			if err != nil {
				return nil, &ErrEvaluation{Cause: err}
			}
			if prev, ok := lastEmitted[d.ID]; !ok || math.Abs(v-prev) > valueChangeEpsilon {
				ev.Parameters = append(ev.Parameters, ParameterEvent{ParameterID: d.ID, Value: v})
				lastEmitted[d.ID] = v
			}
		}
		ev.Covariates = snapshot(rolling)
		out = append(out, ev)
	}

	return out, nil
}

// ExtractPopulationOnly implements the population-only entry point (spec
// section 4.6.4): a single event at the minimum representable instant
// holding every parameter at its population value, for callers with no
// patient context.
func ExtractPopulationOnly(defs drugmodel.ParameterDefinitions) ParameterSetSeries {
	ev := ParameterSetEvent{EventTime: timeutil.MinInstant()}
	for _, d := range defs {
		ev.Parameters = append(ev.Parameters, ParameterEvent{ParameterID: d.ID, Value: d.Value})
	}
	return ParameterSetSeries{ev}
}

func snapshot(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
