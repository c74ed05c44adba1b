package graph

import (
	"sort"

	"github.com/go-pkcore/pkcore/pk/operation"
)

// ValueHandle is a non-owning handle to a caller-held scalar event. The
// Manager never owns the underlying storage — spec section 3's ownership
// note requires every handle's target to outlive the Manager.
type ValueHandle interface {
	Value() float64
	SetValue(float64)
}

// OperableHandle is a ValueHandle that also exposes the Operation driving
// its value, so the Manager can discover its declared inputs and recompute
// it on demand.
type OperableHandle interface {
	ValueHandle
	Operation() operation.Operation
}

type node struct {
	name     string
	handle   ValueHandle
	operable bool
	op       operation.Operation // nil for inputs
}

// Manager is the Operable Graph Manager (spec section 4.3). It is not safe
// for concurrent use; a single caller owns one Manager through a single
// extraction pass.
type Manager struct {
	nodes map[string]*node
	order []string // cached topological order of operable names; nil until resolved
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{nodes: make(map[string]*node)}
}

// RegisterInput registers a leaf value under name. The Manager reads h's
// current value on demand; it never writes to it.
func (m *Manager) RegisterInput(name string, h ValueHandle) error {
	if _, exists := m.nodes[name]; exists {
		return &ErrDuplicateName{Name: name}
	}
	m.nodes[name] = &node{name: name, handle: h}
	m.order = nil
	return nil
}

// RegisterOperable registers a computed node under name. The Manager reads
// h.Operation() to discover dependencies and, on Evaluate, writes the
// computed result back through h.
func (m *Manager) RegisterOperable(name string, h OperableHandle) error {
	if _, exists := m.nodes[name]; exists {
		return &ErrDuplicateName{Name: name}
	}
	m.nodes[name] = &node{name: name, handle: h, operable: true, op: h.Operation()}
	m.order = nil
	return nil
}

// GetValue returns the current value of any registered node. For
// operables, this reflects the result of the last successful Evaluate.
func (m *Manager) GetValue(name string) (float64, error) {
	n, ok := m.nodes[name]
	if !ok {
		return 0, &ErrUnknownNode{Name: name}
	}
	return n.handle.Value(), nil
}

// resolveOrder computes (and caches) a topological order over the
// registered operables, using Kahn's algorithm over the dependency edges
// declared by each operable's Operation.Inputs(). Nodes unreachable from
// any operable (pure inputs) are not part of the order — they are valid
// leaves, never evaluated themselves.
func (m *Manager) resolveOrder() ([]string, error) {
	if m.order != nil {
		return m.order, nil
	}

	// in-degree: number of *operable* dependencies of each operable.
	inDegree := make(map[string]int, len(m.nodes))
	dependents := make(map[string][]string) // dependency name -> operables depending on it

	var operableNames []string
	for name, n := range m.nodes {
		if !n.operable {
			continue
		}
		operableNames = append(operableNames, name)
	}
	sort.Strings(operableNames) // deterministic seed order

	for _, name := range operableNames {
		n := m.nodes[name]
		for _, in := range n.op.Inputs() {
			dep, ok := m.nodes[in.Name]
			if !ok {
				return nil, &ErrMissingInput{Operable: name, Input: in.Name}
			}
			if dep.operable {
				inDegree[name]++
				dependents[in.Name] = append(dependents[in.Name], name)
			}
		}
	}

	var ready []string
	for _, name := range operableNames {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		deps := dependents[next]
		sort.Strings(deps)
		for _, dependent := range deps {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
				sort.Strings(ready)
			}
		}
	}

	if len(order) != len(operableNames) {
		var stuck []string
		for _, name := range operableNames {
			if inDegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, &ErrCycle{Names: stuck}
	}

	m.order = order
	return order, nil
}

// Evaluate walks every registered operable in dependency order, gathering
// each one's declared input values from the graph, invoking its Operation,
// and writing the result back through its handle. It aborts on the first
// failing operable and restores every value already written during this
// pass, so operables keep the results of the last successful Evaluate
// (spec section 4.3.3: "on failure, abort the whole evaluation, returning
// false").
func (m *Manager) Evaluate() error {
	order, err := m.resolveOrder()
	if err != nil {
		return err
	}

	previous := make(map[string]float64, len(order))
	restore := func() {
		for name, v := range previous {
			m.nodes[name].handle.SetValue(v)
		}
	}

	for _, name := range order {
		n := m.nodes[name]
		values := make(map[string]float64, len(n.op.Inputs()))
		for _, in := range n.op.Inputs() {
			v, err := m.GetValue(in.Name)
			if err != nil {
				restore()
				return err
			}
			values[in.Name] = v
		}

		result, ok := n.op.Evaluate(values)
		if !ok {
			restore()
			return &ErrEvaluation{Operable: name}
		}
		previous[name] = n.handle.Value()
		n.handle.SetValue(result)
	}
	return nil
}
