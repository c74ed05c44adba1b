package drugmodel

import "github.com/go-pkcore/pkcore/pk/timeutil"

// Formulation is one analyte/formulation's parameter set within a DrugModel
// bundle (spec section 6.1: "parameter definitions grouped by
// analyte/formulation").
type Formulation struct {
	Name       string
	Parameters ParameterDefinitions
}

// DrugModel is the read-only bundle supplied to an orchestrated extraction
// run (spec section 6.1): covariate definitions, parameter definitions
// grouped by formulation, domain constraints, and the time to steady state
// downstream simulators use to size their own windows.
type DrugModel struct {
	ID                string
	Covariates        Definitions
	Domain            *DrugModelDomain
	Formulations      []Formulation
	TimeToSteadyState timeutil.Duration
}

// ParametersFor returns the parameter definitions declared for a named
// formulation, or nil if the model declares no such formulation.
func (m *DrugModel) ParametersFor(formulation string) ParameterDefinitions {
	for _, f := range m.Formulations {
		if f.Name == formulation {
			return f.Parameters
		}
	}
	return nil
}
