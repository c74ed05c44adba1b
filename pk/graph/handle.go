package graph

import "github.com/go-pkcore/pkcore/pk/operation"

// ScalarHandle is a minimal ValueHandle/OperableHandle backed by an
// in-memory float64, for callers that don't need the value tied to a
// larger owning struct (e.g. tests, and the covariate and parameter
// extractors).
type ScalarHandle struct {
	value float64
	op    operation.Operation
}

// NewInputHandle returns a ScalarHandle usable with RegisterInput.
func NewInputHandle(initial float64) *ScalarHandle {
	return &ScalarHandle{value: initial}
}

// NewOperableHandle returns a ScalarHandle usable with RegisterOperable.
func NewOperableHandle(op operation.Operation, initial float64) *ScalarHandle {
	return &ScalarHandle{value: initial, op: op}
}

func (h *ScalarHandle) Value() float64            { return h.value }
func (h *ScalarHandle) SetValue(v float64)        { h.value = v }
func (h *ScalarHandle) Operation() operation.Operation { return h.op }
