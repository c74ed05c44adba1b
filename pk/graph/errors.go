package graph

import "fmt"

// ErrDuplicateName indicates an attempt to register a node under a name
// already in use within this Manager.
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("graph: node %q already registered", e.Name)
}

// ErrCycle indicates the declared inputs of the registered operables form
// a cycle, making a valid evaluation order impossible.
type ErrCycle struct {
	Names []string
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("graph: dependency cycle detected among %v", e.Names)
}

// ErrMissingInput indicates an operable's operation declared an input name
// that was never registered in this Manager.
type ErrMissingInput struct {
	Operable, Input string
}

func (e *ErrMissingInput) Error() string {
	return fmt.Sprintf("graph: operable %q requires unregistered input %q", e.Operable, e.Input)
}

// ErrEvaluation indicates a registered operable's Operation failed to
// evaluate (undefined reference, non-finite result, or similar).
type ErrEvaluation struct {
	Operable string
}

func (e *ErrEvaluation) Error() string {
	return fmt.Sprintf("graph: operable %q failed to evaluate", e.Operable)
}

// ErrUnknownNode indicates GetValue was called with a name never
// registered in this Manager.
type ErrUnknownNode struct {
	Name string
}

func (e *ErrUnknownNode) Error() string {
	return fmt.Sprintf("graph: unknown node %q", e.Name)
}
