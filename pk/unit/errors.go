package unit

import "fmt"

// ErrUnrecognizedToken indicates a unit string could not be decomposed into
// known base-dimension factors.
type ErrUnrecognizedToken struct {
	Token string
}

func (e *ErrUnrecognizedToken) Error() string {
	return fmt.Sprintf("unit: unrecognized token %q", e.Token)
}

// MismatchError indicates an attempted conversion between two units whose
// dimension signatures do not match (spec section 4.1: "conversions between
// incommensurable units must fail explicitly").
type MismatchError struct {
	From, To Unit
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("unit: %q and %q are not commensurable", e.From, e.To)
}
