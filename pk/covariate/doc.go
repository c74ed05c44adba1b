// Package covariate implements the Covariate Extractor (C4, spec section
// 4.4): it reconciles static CovariateDefinitions against a patient's
// measured PatientVariates over an observation window, producing a
// chronologically ordered CovariateSeries.
//
// Extraction runs in distinct, sequential stages mirroring the spec's
// subsections: classify definitions into valued and computed (4.4.1),
// normalize each valued covariate's observations (4.4.2), synthesize the
// initial event at start for every definition (4.4.3 / 4.4.4), derive
// age/treatment-time covariates from birthdate or treatment-start (4.4.5),
// collect the set of refresh instants (4.4.6), and emit events at each
// instant in ascending order (4.4.7). A single graph.Manager backs the
// computed-covariate re-evaluation throughout a single Extract call.
package covariate
