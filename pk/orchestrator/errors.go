package orchestrator

import "fmt"

// ErrInvalidInput covers a nil model/treatment, or start > end, passed to Run.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("orchestrator: invalid input: %s", e.Reason)
}

// ErrStage wraps a failure surfaced by one of the three pipeline stages,
// short-circuiting the run on its first non-Ok status (spec section 7:
// "callers compose pipelines by short-circuiting on the first non-Ok
// status").
type ErrStage struct {
	Stage string
	Cause error
}

func (e *ErrStage) Error() string {
	return fmt.Sprintf("orchestrator: %s stage failed: %v", e.Stage, e.Cause)
}

func (e *ErrStage) Unwrap() error { return e.Cause }
