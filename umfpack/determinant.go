// SPDX-License-Identifier: MIT
// Package umfpack: determinant extraction.

package umfpack

import "math"

// Determinant computes det(A) = coefficient · 10^exponent from the
// factors in nu, writing the pair into *dx and *ex. The split
// representation carries magnitudes far beyond the native float64 range.
//
// From P·R·A·Q = L·U with unit-diagonal L and R = diag(1/rs):
//
//	det(A) = sign(P)·sign(Q) · ∏ U(k,k) · ∏ rs(i)
//
// A zero U diagonal yields (0, 0) with StatusWarningSingularMatrix.
// When the determinant is simply not requested by a caller, the session
// layer leaves the outputs at the same neutral (0, 0) pair.
func Determinant(dx, ex *float64, nu *Numeric, info *[InfoSize]float64) int32 {
	if dx == nil || ex == nil || info == nil {
		return StatusErrorInvalidNumeric
	}
	if nu == nil {
		info[InfoStatus] = float64(StatusErrorInvalidNumeric)

		return StatusErrorInvalidNumeric
	}

	mantissa := nu.permSign
	exponent := 0.0
	scale := func(f float64) bool {
		if f == 0 {
			return false
		}
		mantissa *= f
		for math.Abs(mantissa) >= 10 {
			mantissa /= 10
			exponent++
		}
		for math.Abs(mantissa) < 1 {
			mantissa *= 10
			exponent--
		}

		return true
	}

	for _, d := range nu.ud {
		if !scale(d) {
			*dx, *ex = 0, 0
			info[InfoStatus] = float64(StatusWarningSingularMatrix)

			return StatusWarningSingularMatrix
		}
	}
	for _, r := range nu.rs {
		scale(r) // rs entries are nonzero by construction
	}

	*dx, *ex = mantissa, exponent
	info[InfoStatus] = float64(StatusOK)

	return StatusOK
}
