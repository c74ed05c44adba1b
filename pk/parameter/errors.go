package parameter

import "fmt"

// ErrInvalidInput covers a malformed call to Extract (e.g. end before start).
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("parameter: invalid input: %s", e.Reason)
}

// ErrUnknownCovariate is returned when a bucket after the first introduces a
// covariate ID never present in the initial bucket (spec section 4.6.1).
type ErrUnknownCovariate struct {
	CovariateID string
}

func (e *ErrUnknownCovariate) Error() string {
	return fmt.Sprintf("parameter: covariate %q first appears after the initial bucket", e.CovariateID)
}

// ErrEvaluation wraps a failure from the underlying Operable Graph Manager
// (registration conflict, missing input, cycle, or a failing Operation).
type ErrEvaluation struct {
	Cause error
}

func (e *ErrEvaluation) Error() string {
	return fmt.Sprintf("parameter: graph evaluation failed: %v", e.Cause)
}

func (e *ErrEvaluation) Unwrap() error { return e.Cause }
