// Package operation models a scripted expression (spec section 4.2): a
// formula text plus a declared, ordered list of named scalar inputs, which
// evaluates to a single float64 given concrete input values.
//
// Formulas are compiled and run through github.com/antonmedv/expr, the
// expression-evaluation engine carried in from the example pack (pulled in
// transitively by the emer/leabra stack). An Operation is a pure function
// of its declared inputs: Evaluate never mutates shared state, and Clone
// produces an independent handle so the same formula can back multiple
// concurrently-instantiated constraints (spec section 4.2) without sharing
// mutable state.
package operation
