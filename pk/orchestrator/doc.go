// Package orchestrator implements the Orchestrator (C7, spec section 4.7):
// it wires the Covariate Extractor (C4), the Domain Constraints Evaluator
// (C5), and the Parameters Extractor (C6) into a single pipeline call, the
// way a request handler threads one correlation ID through the stages it
// delegates to. Each run is tagged with a RunID for correlating the
// three-stage CovariateSeries -> verdict -> ParameterSetSeries handoff
// across logs.
package orchestrator
