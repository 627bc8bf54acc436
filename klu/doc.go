// Package klu implements back end A: a KLU-style sparse LU engine with a
// pattern-only symbolic phase and an in-place solve.
//
// The package mirrors the call shape of the native engine it models:
// a Common control/statistics block passed to every call, an Analyze /
// Factor / Solve / Condest pipeline, and explicit FreeSymbolic /
// FreeNumeric release functions that nil the caller's handle so a double
// free is structurally impossible. Failures are reported through a nil
// handle plus Common.Status, never through panics.
//
// Pipeline:
//
//	Analyze  — pattern only: fill-reducing ordering (minimum degree on
//	           the pattern of A+Aᵀ, or natural), producing a Symbolic
//	Factor   — left-looking sparse LU with threshold partial pivoting
//	           and optional row scaling, producing a Numeric
//	Solve    — dense right-hand side(s), solved in place
//	Condest  — Hager-style 1-norm condition estimate (cond₁, not its
//	           reciprocal), written to Common.Condest
//
// Handles are exclusively owned by the caller (in this library, by a
// solver session). LiveSymbolic/LiveNumeric expose live-handle counters
// so leak and double-free properties are observable in tests.
//
// This is a stand-in engine: it preserves the native interface contract
// and error model while keeping the kernels small, deterministic pure Go.
package klu
