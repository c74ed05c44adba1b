package domainconstraints

import "fmt"

// ErrInvalidInput covers a nil domain or treatment passed to Evaluate.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("domainconstraints: invalid input: %s", e.Reason)
}

// ErrMissingPopulationDefault indicates a constraint referenced a covariate
// name never seen in the series and carrying no population default to fall
// back to (spec section 4.5: "defaulting to population values if unseen").
type ErrMissingPopulationDefault struct {
	CovariateID string
}

func (e *ErrMissingPopulationDefault) Error() string {
	return fmt.Sprintf("domainconstraints: no population default for unseen covariate %q", e.CovariateID)
}
