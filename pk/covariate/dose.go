package covariate

import (
	"github.com/go-pkcore/pkcore/pk/treatment"
	"github.com/go-pkcore/pkcore/pk/unit"
)

// DoseVariatesFromIntakes synthesizes raw Dose-category observations from a
// treatment's intake history, converted into targetUnit (SPEC_FULL.md
// section C.2: a Dose covariate definition with no explicit patient
// observations is populated from the dosage history that intake
// extraction — out of scope here — already produced).
func DoseVariatesFromIntakes(intakes treatment.IntakeSeries, targetUnit unit.Unit) ([]rawObservation, error) {
	out := make([]rawObservation, 0, len(intakes))
	for _, in := range intakes {
		v, err := unit.Convert(in.Dose, in.Unit, targetUnit)
		if err != nil {
			return nil, err
		}
		out = append(out, rawObservation{t: in.StartTime, value: v})
	}
	return out, nil
}
