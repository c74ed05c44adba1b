// Package treatment models the read-only DrugTreatment input (spec section
// 6.1): a patient's measured covariate observations and the dosage history
// used only to locate the treatment's start instant (intake extraction
// itself stays out of scope, per spec section 1 — only its output series
// is consumed here).
package treatment
