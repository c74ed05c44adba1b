package drugmodel

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-pkcore/pkcore/pk/operation"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/unit"
)

var validate = validator.New()

// CovariateDefinition is the drug model's static description of one
// covariate (spec section 3): its identity, its expected shape, and how it
// should be tracked over time.
type CovariateDefinition struct {
	ID          string `validate:"required"`
	HumanName   string
	Description string

	Category      Category
	DataType      DataType
	Interpolation InterpolationType
	Unit          unit.Unit

	// DefaultValue is the population default, as a string parsed per
	// DataType (spec section 3).
	DefaultValue string

	// RefreshPeriod, if non-empty, forces periodic re-sampling (spec
	// section 4.4.6) regardless of observation cadence.
	RefreshPeriod timeutil.Duration

	// Operation, if set, makes this a computed covariate: its value is
	// derived by the Operable Graph Manager rather than observed.
	Operation operation.Operation

	// Validation, if set, is an expression returning 0/1. The domain
	// constraints evaluator does not read it: only the Check operations of
	// a DrugModelDomain's Constraints are evaluated.
	Validation operation.Operation
}

// IsComputed reports whether this definition carries a computing Operation.
func (d *CovariateDefinition) IsComputed() bool { return d.Operation != nil }

// Validate checks the struct-tag constraints via go-playground/validator,
// plus the invariants from spec section 3 that tags alone can't express:
// non-empty ID, and non-negative default for age/time-from-start
// categories.
func (d *CovariateDefinition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return &ErrInvalidDefinition{ID: d.ID, Reason: err.Error()}
	}
	if d.Category.IsAge() || d.Category.IsTimeFromStart() {
		if v, err := ParseDefault(d); err == nil && v < 0 {
			return &ErrInvalidDefinition{ID: d.ID, Reason: "age/time-from-start default may not be negative"}
		}
	}
	return nil
}

// ParseDefault parses a definition's DefaultValue per its DataType into a
// float64 (0/1 for Bool, seconds-since-epoch for Date).
func ParseDefault(d *CovariateDefinition) (float64, error) {
	return ParseTypedValue(d.DefaultValue, d.DataType)
}

// Definitions is an ordered collection of CovariateDefinition, as supplied
// by the drug model.
type Definitions []*CovariateDefinition

// ValidateNoDuplicateCategories enforces spec section 3's invariant that at
// most one covariate definition may exist per age/time-from-start category.
func (ds Definitions) ValidateNoDuplicateCategories() error {
	seen := make(map[Category]string)
	for _, d := range ds {
		if !d.Category.IsAge() && !d.Category.IsTimeFromStart() {
			continue
		}
		if existing, ok := seen[d.Category]; ok {
			return &ErrInvalidDefinition{ID: d.ID, Reason: "duplicate category " + d.Category.String() + " also used by " + existing}
		}
		seen[d.Category] = d.ID
	}
	return nil
}

// FinalUnit returns the unit a covariate's extracted events are expressed
// in: the declared Unit of its definition. This is the generalized form of
// the original extractor's getFinalUnit helper (SPEC_FULL.md section C.1).
func (ds Definitions) FinalUnit(id string) (unit.Unit, bool) {
	for _, d := range ds {
		if d.ID == id {
			return d.Unit, true
		}
	}
	return "", false
}

// ByID indexes the collection by definition ID. Callers should treat the
// result as read-only once built from a validated Definitions slice.
func (ds Definitions) ByID() map[string]*CovariateDefinition {
	m := make(map[string]*CovariateDefinition, len(ds))
	for _, d := range ds {
		m[d.ID] = d
	}
	return m
}
