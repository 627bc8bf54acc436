// SPDX-License-Identifier: MIT
// Package klu: triangular solves against a computed factorization.

package klu

// Solve computes x = A⁻¹·b for nrhs dense right-hand sides stored
// contiguously in b (column major, ndim entries each), in place: on
// return b holds the solutions. The stored factors are read only, so any
// number of solves may run against one factorization sequentially.
//
// Returns false with c.Status = StatusInvalid on nil handles or a
// dimension/length disagreement; true with StatusOK otherwise.
//
// Complexity: O(nrhs · (n + lnz + unz)).
func Solve(sym *Symbolic, nu *Numeric, ndim, nrhs int32, b []float64, c *Common) bool {
	if c == nil {
		return false
	}
	if sym == nil || nu == nil || ndim != nu.n || nrhs <= 0 || int32(len(b)) != ndim*nrhs {
		c.Status = StatusInvalid

		return false
	}

	n := nu.n
	y := make([]float64, n)
	var r int32
	for r = 0; r < nrhs; r++ {
		rhs := b[r*n : (r+1)*n]

		// y = P·R·b (scale rows, then permute into pivot order).
		for i := int32(0); i < n; i++ {
			y[nu.pinv[i]] = rhs[i] / nu.rs[i]
		}

		lsolve(nu, y)
		usolve(nu, y)

		// x = Q·y (undo the fill-reducing column permutation).
		for k := int32(0); k < n; k++ {
			rhs[nu.perm[k]] = y[k]
		}
	}

	c.Status = StatusOK

	return true
}

// lsolve solves L·y = y in place (unit diagonal, columns in pivot space).
func lsolve(nu *Numeric, y []float64) {
	for k := int32(0); k < nu.n; k++ {
		yk := y[k]
		if yk == 0 {
			continue
		}
		for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
			y[nu.li[q]] -= yk * nu.lx[q]
		}
	}
}

// usolve solves U·y = y in place (diagonal in ud, off-diagonals by column).
func usolve(nu *Numeric, y []float64) {
	for k := nu.n - 1; k >= 0; k-- {
		y[k] /= nu.ud[k]
		yk := y[k]
		if yk == 0 {
			continue
		}
		for q := nu.up[k]; q < nu.up[k+1]; q++ {
			y[nu.ui[q]] -= yk * nu.ux[q]
		}
	}
}

// solveTranspose computes z = A⁻ᵀ·b in place, used by Condest. Same
// read-only contract as Solve, single right-hand side.
func solveTranspose(nu *Numeric, b []float64) {
	n := nu.n
	t := make([]float64, n)

	// t = Qᵀ·b.
	for k := int32(0); k < n; k++ {
		t[k] = b[nu.perm[k]]
	}

	// Uᵀ·s = t: forward substitution (Uᵀ is lower triangular).
	for k := int32(0); k < n; k++ {
		sum := t[k]
		for q := nu.up[k]; q < nu.up[k+1]; q++ {
			sum -= nu.ux[q] * t[nu.ui[q]]
		}
		t[k] = sum / nu.ud[k]
	}

	// Lᵀ·v = s: backward substitution (unit diagonal).
	for k := n - 1; k >= 0; k-- {
		for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
			t[k] -= nu.lx[q] * t[nu.li[q]]
		}
	}

	// z = R·Pᵀ·v (undo row permutation, then the row scaling).
	for i := int32(0); i < n; i++ {
		b[i] = t[nu.pinv[i]] / nu.rs[i]
	}
}
