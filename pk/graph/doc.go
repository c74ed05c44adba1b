// Package graph implements the Operable Graph Manager (OGM, spec section
// 4.3): a dependency graph keyed by name rather than by pointer, so that
// computed nodes never hold a reference cycle through each other (spec
// section 5 / section 9's note on avoiding pointer loops).
//
// Callers register two kinds of node under a unique name:
//   - an input, a leaf value the OGM reads on demand from a caller-owned
//     Handle;
//   - an operable, a computed node whose Operation declares the inputs it
//     depends on; the OGM both reads the operation's declared inputs to
//     resolve a topological evaluation order and writes the computed result
//     back through the operable's Handle.
//
// Manager.Evaluate walks operables in dependency order exactly once per
// call; it holds no state between calls and is not safe for concurrent use
// by multiple goroutines (spec section 4.3.3 — "single-threaded").
package graph
