package covariate

import (
	"math"
	"sort"

	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/timeutil"
)

// coincidentTolerance is the interpolation equality tolerance pinned by
// spec section 6.3: two instants closer than this are treated as the same
// point for the purpose of detecting conflicting coincident observations.
const coincidentTolerance = 1e-6

// rawObservation is a single patient observation already converted into its
// covariate definition's declared unit.
type rawObservation struct {
	t     timeutil.Instant
	value float64
}

// normalizeObservations implements spec section 4.4.2: sort ascending,
// trim to the single latest observation at or before start, everything
// strictly inside (start, end), and the single observation at or past end;
// then, for Direct interpolation or a single surviving observation,
// relocate the earliest kept observation onto start.
func normalizeObservations(obs []rawObservation, start, end timeutil.Instant, interp drugmodel.InterpolationType) []rawObservation {
	sorted := append([]rawObservation(nil), obs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].t.Before(sorted[j].t) })

	var before *rawObservation
	var within []rawObservation
	var after *rawObservation

	for i := range sorted {
		o := sorted[i]
		switch {
		case !o.t.After(start):
			before = &sorted[i] // keep only the latest such (loop overwrites)
		case o.t.Before(end):
			within = append(within, o)
		default:
			if after == nil {
				after = &sorted[i]
			}
		}
	}

	var kept []rawObservation
	if before != nil {
		kept = append(kept, *before)
	}
	kept = append(kept, within...)
	if after != nil {
		kept = append(kept, *after)
	}

	if len(kept) == 0 {
		return kept
	}
	if interp == drugmodel.Direct || len(kept) == 1 {
		kept[0].t = start
	}
	return kept
}

// interpolateAt computes the value of a normalized, sorted observation set
// at instant target, per spec section 4.4.7's interpolation rules. A target
// outside the convex hull of surviving observations clamps to the nearest
// endpoint's value — "extrapolation permitted" (spec section 4.4.3) refers
// to the straddling bracket formed by the one retained before-start
// observation and the next, not to projecting beyond every known point.
func interpolateAt(id string, pts []rawObservation, target timeutil.Instant, interp drugmodel.InterpolationType) (float64, error) {
	switch len(pts) {
	case 0:
		return 0, &ErrInterpolation{CovariateID: id, Reason: "no observations to interpolate"}
	case 1:
		return pts[0].value, nil
	}

	for k := 1; k < len(pts); k++ {
		if math.Abs(float64(pts[k].t.ToSeconds()-pts[k-1].t.ToSeconds())) < coincidentTolerance &&
			math.Abs(pts[k].value-pts[k-1].value) > coincidentTolerance {
			return 0, &ErrInterpolation{CovariateID: id, Reason: "conflicting coincident observations"}
		}
	}

	if !target.After(pts[0].t) {
		return pts[0].value, nil
	}
	if !target.Before(pts[len(pts)-1].t) {
		return pts[len(pts)-1].value, nil
	}

	// Locate the bracket: the pair (i, i+1) with pts[i].t <= target < pts[i+1].t.
	i := 0
	for i < len(pts)-2 && !pts[i+1].t.After(target) {
		i++
	}
	v1, t1 := pts[i].value, pts[i].t
	v2, t2 := pts[i+1].value, pts[i+1].t

	if interp == drugmodel.Direct {
		if target.Before(t2) {
			return v1, nil
		}
		return v2, nil
	}

	dt := float64(t2.ToSeconds() - t1.ToSeconds())
	if math.Abs(dt) < coincidentTolerance {
		if math.Abs(v1-v2) > coincidentTolerance {
			return 0, &ErrInterpolation{CovariateID: id, Reason: "conflicting coincident observations"}
		}
		return v1, nil
	}

	frac := float64(target.ToSeconds()-t1.ToSeconds()) / dt
	return v1 + (v2-v1)*frac, nil
}
