package parameter

import (
	"sort"

	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// ParameterEvent binds a parameter definition's ID to a concrete value at
// its owning ParameterSetEvent's instant (spec section 3's Parameter /
// ParameterDefinition entry).
type ParameterEvent struct {
	ParameterID string
	Value       float64
}

// ParameterSetEvent is one instant's worth of parameter changes (spec
// section 3's ParameterSetEvent): the parameters that changed at eventTime,
// in delta form, plus the covariate snapshot that produced them.
type ParameterSetEvent struct {
	EventTime  timeutil.Instant
	Parameters []ParameterEvent
	Covariates map[string]float64
}

// ParameterSetSeries is a chronologically ordered list of ParameterSetEvent
// (spec section 3). Extract returns the delta form; BuildFullSet expands it
// into the full form, restating every parameter at every event.
type ParameterSetSeries []ParameterSetEvent

// BuildFullSet produces a parallel series where each event restates every
// parameter present at or before it, folding the delta series forward (spec
// section 4.6.3: "the auxiliary buildFullSet pass produces a parallel series
// where each event restates every parameter by folding deltas forward").
func BuildFullSet(delta ParameterSetSeries) ParameterSetSeries {
	full := make(ParameterSetSeries, len(delta))
	running := make(map[string]float64)

	for i, ev := range delta {
		for _, pe := range ev.Parameters {
			running[pe.ParameterID] = pe.Value
		}

		ids := make([]string, 0, len(running))
		for id := range running {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		params := make([]ParameterEvent, 0, len(ids))
		for _, id := range ids {
			params = append(params, ParameterEvent{ParameterID: id, Value: running[id]})
		}

		full[i] = ParameterSetEvent{
			EventTime:  ev.EventTime,
			Parameters: params,
			Covariates: ev.Covariates,
		}
	}

	return full
}
