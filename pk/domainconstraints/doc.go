// Package domainconstraints implements the Domain Constraints Evaluator
// (C5, spec section 4.5): given an extracted covariate series and a drug
// model's admissibility predicates, it re-evaluates every constraint at
// each event instant while maintaining a rolling snapshot of covariate
// values, joining the per-constraint results into a single verdict under
// the lattice Compatible < PartiallyCompatible < Incompatible <
// ComputationError.
package domainconstraints
