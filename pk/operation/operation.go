package operation

// ScalarType identifies the numeric type an Operation input is declared
// with. It only distinguishes numeric representations — Operation always
// evaluates to a float64 regardless of an input's declared type.
type ScalarType int

const (
	ScalarInt ScalarType = iota
	ScalarDouble
	ScalarBool
)

// Input is one declared, named input of an Operation, in the order the
// formula expects them.
type Input struct {
	Name string
	Type ScalarType
}

// Operation is a pure function of its declared inputs (spec section 4.2).
// Implementations must be safe to call Evaluate on repeatedly and
// concurrently once Clone has produced an independent handle — Evaluate
// itself must not mutate any state shared between clones.
type Operation interface {
	// Inputs returns the ordered list of declared inputs.
	Inputs() []Input

	// Evaluate computes the operation's result given concrete values for
	// every declared input, keyed by name. It returns ok=false if the
	// formula referenced an undefined name, produced a non-numeric or
	// non-finite result, or otherwise failed to evaluate.
	Evaluate(values map[string]float64) (result float64, ok bool)

	// Clone returns an independent handle to the same formula, so that
	// multiple evaluations (e.g. one per domain constraint instantiation)
	// never share mutable state.
	Clone() Operation
}
