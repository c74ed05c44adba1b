package covariate

import "github.com/go-pkcore/pkcore/pk/timeutil"

// Event is a single emitted covariate value (spec section 3's
// CovariateEvent): a reference to the originating definition's ID, the
// instant it takes effect, and its value already converted into the
// definition's declared unit.
type Event struct {
	CovariateID string
	EventTime   timeutil.Instant
	Value       float64
}

// Series is a chronologically ordered list of Events (spec section 6.2),
// possibly interleaving multiple covariate IDs.
type Series []Event

// Len, Less, and Swap satisfy sort.Interface, ordering by EventTime and,
// for ties, by CovariateID for a deterministic output order.
func (s Series) Len() int      { return len(s) }
func (s Series) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s Series) Less(i, j int) bool {
	if s[i].EventTime.Equal(s[j].EventTime) {
		return s[i].CovariateID < s[j].CovariateID
	}
	return s[i].EventTime.Before(s[j].EventTime)
}

// ValuesAt returns the value of every covariate as of instant t (the most
// recently emitted event at or before t), reconstructed by scanning the
// already-sorted series. Used by tests and by downstream callers that want
// a snapshot without replaying the whole extraction.
func (s Series) ValuesAt(t timeutil.Instant) map[string]float64 {
	out := make(map[string]float64)
	for _, ev := range s {
		if ev.EventTime.After(t) {
			break
		}
		out[ev.CovariateID] = ev.Value
	}
	return out
}
