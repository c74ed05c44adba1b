package parameter

import (
	"sort"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// instantBucket groups every covariate value reported at one instant.
type instantBucket struct {
	at     timeutil.Instant
	values map[string]float64
}

// bucketByInstant groups series events sharing the same instant, in
// ascending chronological order.
func bucketByInstant(series covariate.Series) []instantBucket {
	sorted := append(covariate.Series(nil), series...)
	sort.Stable(sorted)

	var buckets []instantBucket
	for _, ev := range sorted {
		if len(buckets) > 0 && buckets[len(buckets)-1].at.Equal(ev.EventTime) {
			buckets[len(buckets)-1].values[ev.CovariateID] = ev.Value
			continue
		}
		buckets = append(buckets, instantBucket{at: ev.EventTime, values: map[string]float64{ev.CovariateID: ev.Value}})
	}
	return buckets
}

// synthesizeBuckets implements spec section 4.6.1: discard events past end,
// back-propagate every covariate seen before start onto start (retaining
// the latest pre-start value per id), drop the pre-start buckets, and
// guarantee a bucket lands at start even if nothing else does.
func synthesizeBuckets(series covariate.Series, start, end timeutil.Instant) []instantBucket {
	raw := bucketByInstant(series)

	carry := make(map[string]float64)
	var atOrAfter []instantBucket

	for _, b := range raw {
		switch {
		case b.at.Before(start):
			for id, v := range b.values {
				carry[id] = v
			}
		case b.at.After(end):
			// discarded: past the extraction window
		default:
			atOrAfter = append(atOrAfter, b)
		}
	}

	if len(atOrAfter) > 0 && atOrAfter[0].at.Equal(start) {
		merged := make(map[string]float64, len(carry)+len(atOrAfter[0].values))
		for id, v := range carry {
			merged[id] = v
		}
		for id, v := range atOrAfter[0].values {
			merged[id] = v
		}
		atOrAfter[0].values = merged
		return atOrAfter
	}

	startBucket := instantBucket{at: start, values: carry}
	return append([]instantBucket{startBucket}, atOrAfter...)
}
