// Package parameter implements the Parameters Extractor (C6): given a
// covariate event series and a drug model's parameter definitions, it
// synthesizes the instants at which parameters must be re-evaluated, wires
// every covariate and population value into a fresh Operable Graph Manager,
// and emits a delta series recording only the parameters that actually
// changed at each instant, alongside a covariate snapshot.
package parameter
