package covariate

import "fmt"

// ErrInvalidInput covers spec section 4.4.8's "null definition/variate",
// duplicate-category, window, and unit-conversion failure modes.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("covariate: invalid input: %s", e.Reason)
}

// ErrInterpolation covers conflicting coincident observations (same instant,
// different values) and non-monotone timestamps surviving normalization.
type ErrInterpolation struct {
	CovariateID string
	Reason      string
}

func (e *ErrInterpolation) Error() string {
	return fmt.Sprintf("covariate: %q: interpolation failure: %s", e.CovariateID, e.Reason)
}

// ErrEvaluation wraps an Operable Graph Manager failure encountered while
// evaluating computed covariates.
type ErrEvaluation struct {
	Cause error
}

func (e *ErrEvaluation) Error() string {
	return fmt.Sprintf("covariate: computed covariate evaluation failed: %v", e.Cause)
}

func (e *ErrEvaluation) Unwrap() error { return e.Cause }
