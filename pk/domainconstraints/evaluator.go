package domainconstraints

import (
	"math"
	"sort"
	"strings"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/treatment"
)

// ConstraintResult is one constraint's verdict within a Result.
type ConstraintResult struct {
	Constraint *drugmodel.Constraint
	Verdict    Verdict
}

// Result is the outcome of a full domain evaluation (spec section 6.2):
// the lattice join of every constraint's verdict, plus each one
// individually (testable property 8: "the global verdict is the
// lattice-join of per-constraint verdicts").
type Result struct {
	Global        Verdict
	PerConstraint []ConstraintResult
}

// Evaluate re-evaluates every constraint in domain against series, in
// chronological, instant-bucketed order, maintaining a rolling snapshot of
// covariate values (spec section 4.5). defs supplies population defaults
// for covariates a constraint references before they are first seen in
// series; tr is consulted only for the MandatoryHard presence check.
func Evaluate(series covariate.Series, domain *drugmodel.DrugModelDomain, defs drugmodel.Definitions, tr *treatment.DrugTreatment) (Result, error) {
	if domain == nil {
		return Result{}, &ErrInvalidInput{Reason: "nil domain"}
	}
	if tr == nil {
		return Result{}, &ErrInvalidInput{Reason: "nil treatment"}
	}

	byID := defs.ByID()
	_, hasBirthdate := tr.Birthdate()

	buckets := bucketByInstant(series)

	result := Result{PerConstraint: make([]ConstraintResult, 0, len(domain.Constraints))}

	for _, c := range domain.Constraints {
		verdict := evaluateConstraint(c, buckets, byID)

		if c.Type == drugmodel.MandatoryHard {
			for _, id := range c.RequiredCovariateIDs {
				if !tr.HasCovariate(id) && !(isAgeCovariateName(id) && hasBirthdate) {
					verdict = Join(verdict, Incompatible)
				}
			}
		}

		result.PerConstraint = append(result.PerConstraint, ConstraintResult{Constraint: c, Verdict: verdict})
		result.Global = Join(result.Global, verdict)
	}

	return result, nil
}

// evaluateConstraint walks buckets in chronological order, maintaining a
// rolling covariate snapshot, invoking a clone of c.Check at every instant.
func evaluateConstraint(c *drugmodel.Constraint, buckets []instantBucket, byID map[string]*drugmodel.CovariateDefinition) Verdict {
	check := c.Check.Clone()
	rolling := make(map[string]float64)
	verdict := Compatible

	for _, b := range buckets {
		for id, v := range b.values {
			rolling[id] = v
		}

		inputs := make(map[string]float64, len(check.Inputs()))
		missing := false
		for _, in := range check.Inputs() {
			if v, ok := rolling[in.Name]; ok {
				inputs[in.Name] = v
				continue
			}
			d, ok := byID[in.Name]
			if !ok {
				missing = true
				break
			}
			v, err := drugmodel.ParseDefault(d)
			if err != nil {
				missing = true
				break
			}
			inputs[in.Name] = v
		}
		if missing {
			verdict = Join(verdict, ComputationError)
			continue
		}

		result, ok := check.Evaluate(inputs)
		if !ok {
			verdict = Join(verdict, ComputationError)
			continue
		}
		switch {
		case math.Abs(result) < 1e-9:
			switch c.Type {
			case drugmodel.Soft:
				verdict = Join(verdict, PartiallyCompatible)
			default:
				verdict = Join(verdict, Incompatible)
			}
		case math.Abs(result-1) < 1e-9:
			// satisfied, no downgrade
		default:
			verdict = Join(verdict, ComputationError)
		}
	}

	return verdict
}

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

// isAgeCovariateName reports whether id conventionally names an age
// covariate, for the MandatoryHard presence check's birthdate exemption
// (spec section 4.5: "age/Age satisfied by the presence of birthdate").
func isAgeCovariateName(id string) bool {
	return strings.Contains(strings.ToLower(id), "age")
}
