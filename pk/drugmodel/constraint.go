package drugmodel

import "github.com/go-pkcore/pkcore/pk/operation"

// ConstraintType classifies how a failed Constraint affects the domain
// verdict (spec section 4.5 / GLOSSARY).
type ConstraintType int

const (
	// Soft failure downgrades Compatible to PartiallyCompatible.
	Soft ConstraintType = iota
	// Hard failure yields Incompatible.
	Hard
	// MandatoryHard failure yields Incompatible, and additionally requires
	// its covariates to be present in the patient treatment at all.
	MandatoryHard
)

// String returns a human-readable constraint type name.
func (t ConstraintType) String() string {
	switch t {
	case Soft:
		return "Soft"
	case Hard:
		return "Hard"
	case MandatoryHard:
		return "MandatoryHard"
	default:
		return "Unknown"
	}
}

// Constraint is a single admissibility predicate over covariates (spec
// section 3/4.5). Check must evaluate to 0 or 1; any other result is a
// computation error.
type Constraint struct {
	Type                 ConstraintType
	RequiredCovariateIDs []string
	Check                operation.Operation
}

// DrugModelDomain is the ordered list of Constraints a drug model declares
// (spec section 3).
type DrugModelDomain struct {
	Constraints []*Constraint
}
