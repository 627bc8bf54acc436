// SPDX-License-Identifier: MIT
// Package umfpack: solve phase.
//
// The native engine's solve re-reads the matrix instead of caching it:
// the iterative-refinement steps need A to recompute residuals. This
// package keeps that contract: the pattern and values are call inputs.

package umfpack

// Solve computes x from b for the requested system (SysA or SysAT)
// using the factors in nu, then polishes x with iterative refinement
// against the supplied matrix (Control[ControlRefinementSteps] rounds).
// b is read-only; x receives the solution.
//
// Writes InfoStatus; returns the same status code.
func Solve(sys int32, colPtr, rowIdx []int32, values []float64, x, b []float64, nu *Numeric, control *[ControlSize]float64, info *[InfoSize]float64) int32 {
	if control == nil || info == nil {
		return StatusErrorInvalidMatrix
	}
	if nu == nil {
		info[InfoStatus] = float64(StatusErrorInvalidNumeric)

		return StatusErrorInvalidNumeric
	}
	if sys != SysA && sys != SysAT {
		info[InfoStatus] = float64(StatusErrorInvalidSystem)

		return StatusErrorInvalidSystem
	}
	n := nu.n
	if int32(len(x)) != n || int32(len(b)) != n ||
		int32(len(colPtr)) != n+1 || int32(len(rowIdx)) != colPtr[n] || int32(len(values)) != colPtr[n] {
		info[InfoStatus] = float64(StatusErrorInvalidMatrix)

		return StatusErrorInvalidMatrix
	}

	// 1) Base solve through the factors.
	if sys == SysA {
		applySolve(nu, b, x)
	} else {
		applySolveT(nu, b, x)
	}

	// 2) Iterative refinement: r = b - op(A)·x, x += op(A)⁻¹·r.
	steps := int(control[ControlRefinementSteps])
	if steps < 0 {
		steps = DefaultRefinementSteps
	}
	r := make([]float64, n)
	d := make([]float64, n)
	for step := 0; step < steps; step++ {
		copy(r, b)
		residual(sys, colPtr, rowIdx, values, x, r)

		allZero := true
		for _, v := range r {
			if v != 0 {
				allZero = false

				break
			}
		}
		if allZero {
			break // converged to the working precision
		}

		if sys == SysA {
			applySolve(nu, r, d)
		} else {
			applySolveT(nu, r, d)
		}
		for i := int32(0); i < n; i++ {
			x[i] += d[i]
		}
	}

	info[InfoStatus] = float64(StatusOK)

	return StatusOK
}

// residual subtracts op(A)·x from r in place.
func residual(sys int32, colPtr, rowIdx []int32, values []float64, x, r []float64) {
	n := int32(len(x))
	for j := int32(0); j < n; j++ {
		if sys == SysA {
			xj := x[j]
			if xj == 0 {
				continue
			}
			for p := colPtr[j]; p < colPtr[j+1]; p++ {
				r[rowIdx[p]] -= values[p] * xj
			}
		} else {
			sum := 0.0
			for p := colPtr[j]; p < colPtr[j+1]; p++ {
				sum += values[p] * x[rowIdx[p]]
			}
			r[j] -= sum
		}
	}
}

// applySolve writes out = A⁻¹·rhs through the factors:
// out = Q·U⁻¹·L⁻¹·P·R·rhs.
func applySolve(nu *Numeric, rhs, out []float64) {
	n := nu.n
	y := make([]float64, n)
	for i := int32(0); i < n; i++ {
		y[nu.pinv[i]] = rhs[i] / nu.rs[i]
	}

	// L·y = y (unit diagonal).
	for k := int32(0); k < n; k++ {
		yk := y[k]
		if yk == 0 {
			continue
		}
		for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
			y[nu.li[q]] -= yk * nu.lx[q]
		}
	}

	// U·y = y.
	for k := n - 1; k >= 0; k-- {
		y[k] /= nu.ud[k]
		yk := y[k]
		if yk == 0 {
			continue
		}
		for q := nu.up[k]; q < nu.up[k+1]; q++ {
			y[nu.ui[q]] -= yk * nu.ux[q]
		}
	}

	for k := int32(0); k < n; k++ {
		out[nu.cperm[k]] = y[k]
	}
}

// applySolveT writes out = A⁻ᵀ·rhs through the factors:
// out = R·Pᵀ·L⁻ᵀ·U⁻ᵀ·Qᵀ·rhs.
func applySolveT(nu *Numeric, rhs, out []float64) {
	n := nu.n
	t := make([]float64, n)
	for k := int32(0); k < n; k++ {
		t[k] = rhs[nu.cperm[k]]
	}

	// Uᵀ·t = t: forward substitution.
	for k := int32(0); k < n; k++ {
		sum := t[k]
		for q := nu.up[k]; q < nu.up[k+1]; q++ {
			sum -= nu.ux[q] * t[nu.ui[q]]
		}
		t[k] = sum / nu.ud[k]
	}

	// Lᵀ·t = t: backward substitution (unit diagonal).
	for k := n - 1; k >= 0; k-- {
		for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
			t[k] -= nu.lx[q] * t[nu.li[q]]
		}
	}

	for i := int32(0); i < n; i++ {
		out[i] = t[nu.pinv[i]] / nu.rs[i]
	}
}
