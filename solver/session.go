// SPDX-License-Identifier: MIT
// Package solver: lifecycle state shared by both session types.

package solver

import "github.com/katalvlaran/sparsolve/sparse"

// lifecycle tracks the protocol position of a session. Both session
// types embed it; the guard methods implement the shared check order
// (lifecycle flags before any structural or engine work).
type lifecycle struct {
	initialized bool
	factorized  bool

	// Pattern fingerprint recorded at Initialize. Factorize and the
	// matrix-consuming Solve compare against it; a session never follows
	// a pattern change.
	n   int32
	nnz int32
}

// guardInitialize enforces the once-only Initialize rule.
func (l *lifecycle) guardInitialize() error {
	if l.initialized {
		return ErrAlreadyInitialized
	}

	return nil
}

// guardFactorize enforces Initialize-before-Factorize.
func (l *lifecycle) guardFactorize() error {
	if !l.initialized {
		return ErrNeedInitialization
	}

	return nil
}

// recordPattern stores the fingerprint after a successful Initialize.
func (l *lifecycle) recordPattern(n, nnz int32) {
	l.initialized = true
	l.n = n
	l.nnz = nnz
}

// checkStructure rejects a matrix whose dimension or entry count drifted
// from the initialized pattern. Finer drift (same counts, different
// positions) is the caller's contract to keep, as with the native engines.
func (l *lifecycle) checkStructure(m *sparse.CSC) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.Dim() != l.n || m.Nnz() != l.nnz {
		return ErrStructureChanged
	}

	return nil
}

// checkVector rejects a right-hand side or solution vector of the wrong
// length.
func (l *lifecycle) checkVector(v []float64) error {
	if int32(len(v)) != l.n {
		return ErrDimensionMismatch
	}

	return nil
}

// Stats carries the statistics a session accumulates across Factorize
// calls. Fields a given engine never produces stay at their zero value;
// the neutral determinant pair (0, 0) doubles as "not requested".
type Stats struct {
	// EffectiveStrategy is the pivoting strategy actually applied
	// (umfpack.Strategy* codes; back end B only).
	EffectiveStrategy int32

	// EffectiveOrdering is the fill-reducing ordering actually applied.
	EffectiveOrdering int32

	// EffectiveScaling is the row scaling actually applied.
	EffectiveScaling int32

	// CondEstimate is the 1-norm condition estimate (back end A, on request).
	CondEstimate float64

	// Rcond is min|U(k,k)| / max|U(k,k)| (back end B, always).
	Rcond float64

	// DeterminantCoefficient and DeterminantExponent represent
	// det(A) = coefficient · 10^exponent (back end B, on request).
	DeterminantCoefficient float64
	DeterminantExponent    float64
}

// Determinant returns the determinant as (coefficient, base, exponent)
// with base fixed at 10. The split representation carries magnitudes far
// outside the float64 range.
func (s Stats) Determinant() (coefficient, base, exponent float64) {
	return s.DeterminantCoefficient, 10, s.DeterminantExponent
}
