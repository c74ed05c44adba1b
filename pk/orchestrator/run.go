package orchestrator

import (
	"github.com/google/uuid"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/domainconstraints"
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/parameter"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/treatment"
)

// Result is the full output of one orchestrated run (spec section 6.2): the
// three stage outputs, correlated by RunID for downstream logging.
type Result struct {
	RunID      string
	Covariates covariate.Series
	Domain     domainconstraints.Result
	Parameters parameter.ParameterSetSeries
	FullSet    parameter.ParameterSetSeries
}

// Run wires C4 -> C5 -> C6 (spec section 2's data flow:
// "PatientVariates + CovariateDefinitions -> C4 -> CovariateSeries ->
// (C5 verdict, C6 input) -> ParameterSetSeries -> downstream"), stamping the
// result with a fresh RunID. It short-circuits on the first stage that
// fails, per spec section 7's error-handling policy, and never returns a
// partial Result alongside an error.
func Run(model *drugmodel.DrugModel, formulation string, tr *treatment.DrugTreatment, start, end timeutil.Instant) (Result, error) {
	if model == nil {
		return Result{}, &ErrInvalidInput{Reason: "nil drug model"}
	}
	if tr == nil {
		return Result{}, &ErrInvalidInput{Reason: "nil treatment"}
	}
	if end.Before(start) {
		return Result{}, &ErrInvalidInput{Reason: "end precedes start"}
	}

	runID := uuid.NewString()

	series, err := covariate.Extract(model.Covariates, tr, start, end)
	if err != nil {
		return Result{}, &ErrStage{Stage: "covariate extraction", Cause: err}
	}

	var domainResult domainconstraints.Result
	if model.Domain != nil {
		domainResult, err = domainconstraints.Evaluate(series, model.Domain, model.Covariates, tr)
		if err != nil {
			return Result{}, &ErrStage{Stage: "domain evaluation", Cause: err}
		}
	}

	params := model.ParametersFor(formulation)
	delta, err := parameter.Extract(series, params, start, end)
	if err != nil {
		return Result{}, &ErrStage{Stage: "parameter extraction", Cause: err}
	}

	return Result{
		RunID:      runID,
		Covariates: series,
		Domain:     domainResult,
		Parameters: delta,
		FullSet:    parameter.BuildFullSet(delta),
	}, nil
}

// RunPopulationOnly wires the population-only parameter extraction entry
// point (spec section 4.6.4), for callers with no patient context at all.
// No covariate extraction or domain evaluation is performed.
func RunPopulationOnly(model *drugmodel.DrugModel, formulation string) (Result, error) {
	if model == nil {
		return Result{}, &ErrInvalidInput{Reason: "nil drug model"}
	}

	params := model.ParametersFor(formulation)
	delta := parameter.ExtractPopulationOnly(params)

	return Result{
		RunID:      uuid.NewString(),
		Parameters: delta,
		FullSet:    parameter.BuildFullSet(delta),
	}, nil
}
