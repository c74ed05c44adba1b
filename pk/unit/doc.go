// Package unit implements the free-form symbolic unit tokens used by drug
// models (e.g. "kg", "ug/l", "mg*min/l") and the table-driven conversion
// between commensurable units described in spec section 4.1.
//
// A unit token is decomposed into a signed product of base-dimension
// factors (mass, length, time, volume, molar amount): "ug/l" is mass^1 *
// volume^-1, "mg*min/l" is mass^1 * time^1 * volume^-1. Two tokens are
// commensurable exactly when their dimension signatures match; conversion
// is then the ratio of their canonical scale factors. This mirrors the
// teacher's vr package in spirit — a small fixed vocabulary of atomic
// tokens validated and looked up through maps — generalized here to
// composite tokens via a minimal multiplicative-dimension parser, since
// unlike a DICOM VR a clinical unit is not drawn from a fixed enum.
package unit
