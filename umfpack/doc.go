// Package umfpack implements back end B: an UMFPACK-style sparse LU
// engine driven by caller-owned Control and Info arrays.
//
// The package mirrors the call shape of the native engine it models:
// float64 Control/Info arrays addressed by index constants, an Analyze /
// Factor / Solve / Determinant pipeline returning small-integer status
// codes (OK = 0, positive warnings, negative errors), and explicit
// FreeSymbolic / FreeNumeric release functions that nil the caller's
// handle.
//
// Differences from back end A that sessions must preserve:
//
//   - Analyze consumes values as well as the pattern: the automatic
//     strategy selection inspects numeric entries (diagonal presence,
//     pattern symmetry) to pick between the symmetric and unsymmetric
//     strategies.
//   - Solve does not cache the matrix: the pattern and values must be
//     passed again, because the iterative-refinement steps recompute
//     residuals against A directly.
//   - The factorization always records the effective strategy, ordering
//     and reciprocal condition estimate in Info; the determinant is
//     computed on demand from the Numeric handle.
//
// LiveSymbolic/LiveNumeric expose live-handle counters for leak and
// double-free assertions in tests.
//
// This is a stand-in engine: it preserves the native interface contract
// and error model while keeping the kernels small, deterministic pure Go.
package umfpack
