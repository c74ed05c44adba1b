package operation

import (
	"math"
	"sync"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Script is an Operation backed by a formula text compiled and run through
// github.com/antonmedv/expr. The formula references its declared Inputs by
// name; any other identifier is undefined and causes Evaluate to fail.
type Script struct {
	formula string
	inputs  []Input

	compileOnce sync.Once
	program     *vm.Program
	compileErr  error
}

// NewScript declares a new scripted Operation. Compilation is deferred to
// the first Evaluate call (or Compile, to surface errors early) so that
// constructing a Script from drug-model data never itself fails.
func NewScript(formula string, inputs []Input) *Script {
	return &Script{formula: formula, inputs: append([]Input(nil), inputs...)}
}

// Formula returns the operation's formula text.
func (s *Script) Formula() string { return s.formula }

// Inputs returns the declared, ordered input list.
func (s *Script) Inputs() []Input { return append([]Input(nil), s.inputs...) }

// Compile eagerly compiles the formula, returning any compilation error
// wrapped as *ErrCompile. Safe to call more than once; only the first call
// does work.
func (s *Script) Compile() error {
	s.compileOnce.Do(func() {
		program, err := expr.Compile(s.formula, expr.AllowUndefinedVariables())
		if err != nil {
			s.compileErr = &ErrCompile{Formula: s.formula, Cause: err}
			return
		}
		s.program = program
	})
	return s.compileErr
}

// Evaluate runs the compiled formula against the supplied input values.
// Only the names declared in Inputs are exposed to the formula; an
// undeclared reference therefore behaves as an undefined variable and
// fails the evaluation.
func (s *Script) Evaluate(values map[string]float64) (float64, bool) {
	if err := s.Compile(); err != nil {
		return 0, false
	}

	env := make(map[string]interface{}, len(s.inputs))
	for _, in := range s.inputs {
		v, ok := values[in.Name]
		if !ok {
			return 0, false
		}
		env[in.Name] = v
	}

	out, err := expr.Run(s.program, env)
	if err != nil {
		return 0, false
	}

	result, ok := toFloat(out)
	if !ok {
		return 0, false
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}
	return result, true
}

// Clone returns an independent Script handle for the same formula and
// inputs. The clone recompiles on its own first Evaluate call rather than
// sharing the compiled program's cache entry, keeping the two handles free
// of shared mutable state.
func (s *Script) Clone() Operation {
	return NewScript(s.formula, s.inputs)
}

// toFloat converts an expr result (float64, int, int64, or bool) into a
// float64, treating booleans as 0/1 per spec section 6.4 ("numeric 0/1 for
// predicates").
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
