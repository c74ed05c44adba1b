package operation

import "fmt"

// ErrCompile indicates a formula failed to compile (e.g. a syntax error).
// References to undeclared names are not compile errors: Script compiles
// with undefined variables allowed, so such formulas fail only at Evaluate.
type ErrCompile struct {
	Formula string
	Cause   error
}

func (e *ErrCompile) Error() string {
	return fmt.Sprintf("operation: compile %q: %v", e.Formula, e.Cause)
}

func (e *ErrCompile) Unwrap() error { return e.Cause }

// ErrNonNumericResult indicates a formula evaluated successfully but
// produced a value that isn't a finite scalar (non-numeric type, NaN, or
// infinity).
type ErrNonNumericResult struct {
	Formula string
	Got     any
}

func (e *ErrNonNumericResult) Error() string {
	return fmt.Sprintf("operation: %q produced a non-numeric result: %v", e.Formula, e.Got)
}
