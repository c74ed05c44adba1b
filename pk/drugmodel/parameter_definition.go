package drugmodel

import "github.com/go-pkcore/pkcore/pk/operation"

// ParameterDefinition is the drug model's static description of one PK
// parameter (spec section 3): a population value, whether it carries
// inter-individual variability, and, optionally, the Operation that
// computes it from covariates.
type ParameterDefinition struct {
	ID    string `validate:"required"`
	Value float64

	// Variability marks a parameter as carrying population variability
	// (consumed by the out-of-scope PK simulation layer; recorded here
	// purely as a pass-through attribute).
	Variability bool

	// Operation, if set, makes this a computed parameter: its value is
	// derived from covariates by the Operable Graph Manager rather than
	// held constant at Value.
	Operation operation.Operation
}

// IsComputed reports whether this definition carries a computing Operation.
func (p *ParameterDefinition) IsComputed() bool { return p.Operation != nil }

// Validate checks the struct-tag constraints.
func (p *ParameterDefinition) Validate() error {
	if err := validate.Struct(p); err != nil {
		return &ErrInvalidDefinition{ID: p.ID, Reason: err.Error()}
	}
	return nil
}

// ParameterDefinitions is a forward iterator over parameter definitions
// (spec section 4.6 constructor input). A plain slice satisfies the
// iteration needs of this core; the teacher's dicom package iterates
// collections the same way, by index over a slice rather than a custom
// iterator type.
type ParameterDefinitions []*ParameterDefinition
