// Package drugmodel holds the static, drug-model-owned definitions the
// extraction pipeline reconciles against patient data: covariate
// definitions, parameter definitions, and domain constraints (spec section
// 3). These are read-only value trees supplied by the caller; the pipeline
// never mutates them — the Operable Graph Manager reads and writes copies of
// their values held in its own handles.
package drugmodel
