// SPDX-License-Identifier: MIT
// Package klu: numeric phase (left-looking LU with threshold partial pivoting).
//
// The kernel follows the textbook Gilbert–Peierls scheme: for each column,
// a depth-first search over the pattern of the already-computed L columns
// yields the nonzero reach in topological order, the column is solved
// against L, and a pivot is chosen with a preference for the diagonal
// candidate (threshold Common.Tol).

package klu

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Numeric holds the factors computed by Factor: P·R·A·Q = L·U with unit
// lower-triangular L, upper-triangular U (diagonal split into ud), row
// permutation P (pinv), fill-reducing permutation Q (from the Symbolic)
// and row scaling R. Opaque to callers; released via FreeNumeric.
type Numeric struct {
	n int32

	lp []int32 // L column pointers (length n+1)
	li []int32 // L row positions (pivot space), strictly below diagonal
	lx []float64

	up []int32 // U column pointers (length n+1)
	ui []int32 // U row positions (pivot space), strictly above diagonal
	ux []float64
	ud []float64 // U diagonal

	pinv []int32   // original row -> pivot position
	perm []int32   // copy of the symbolic ordering (column k of LU is column perm[k] of A)
	rs   []float64 // row scale divisors (all 1 under ScaleNone)
}

// Dim returns the dimension of the factorization.
func (nu *Numeric) Dim() int32 { return nu.n }

// Factor computes the numeric factorization of the matrix (colPtr, rowIdx,
// values) using the ordering stored in sym. The pattern must be the one
// given to Analyze; the engine does not re-validate that, per contract.
//
// On success it returns a fresh Numeric, records Lnz/Unz/Noffdiag in c and
// sets c.Status = StatusOK. On a singular matrix it returns nil with
// c.Status = StatusSingular; on malformed input nil with StatusInvalid.
func Factor(colPtr, rowIdx []int32, values []float64, sym *Symbolic, c *Common) *Numeric {
	if c == nil {
		return nil
	}
	if sym == nil || int32(len(values)) != colPtr[sym.n] {
		c.Status = StatusInvalid

		return nil
	}

	n := sym.n
	tol := c.Tol
	if tol <= 0 || tol > 1 {
		tol = DefaultTol
	}

	// 1) Row scaling divisors.
	rs, ok := rowScale(n, colPtr, rowIdx, values, c.Scale)
	if !ok {
		c.Status = StatusSingular

		return nil
	}

	nu := &Numeric{
		n:    n,
		lp:   make([]int32, n+1),
		up:   make([]int32, n+1),
		ud:   make([]float64, n),
		pinv: make([]int32, n),
		perm: append([]int32(nil), sym.perm...),
		rs:   rs,
	}
	for i := int32(0); i < n; i++ {
		nu.pinv[i] = -1
	}

	// Workspaces reused across columns.
	x := make([]float64, n)       // dense accumulator
	xi := make([]int32, n)        // reach, topological order in xi[top:]
	stackNode := make([]int32, n) // DFS node stack
	stackPtr := make([]int32, n)  // DFS per-depth child cursor
	marked := bitset.New(uint(n))

	c.Noffdiag = 0
	var j int32
	for j = 0; j < n; j++ {
		col := sym.perm[j]

		// 2) Reach of the column pattern through L, in topological order.
		top := reach(colPtr, rowIdx, col, nu, xi, stackNode, stackPtr, marked)

		// 3) Scatter the scaled column and eliminate against earlier pivots.
		for p := colPtr[col]; p < colPtr[col+1]; p++ {
			i := rowIdx[p]
			x[i] += values[p] / rs[i]
		}
		for px := top; px < n; px++ {
			i := xi[px]
			k := nu.pinv[i]
			if k < 0 {
				continue
			}
			xk := x[i]
			for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
				x[nu.li[q]] -= xk * nu.lx[q]
			}
		}

		// 4) Threshold partial pivoting over the not-yet-pivotal rows.
		pivrow := int32(-1)
		maxabs := 0.0
		for px := top; px < n; px++ {
			i := xi[px]
			if nu.pinv[i] >= 0 {
				continue
			}
			if a := math.Abs(x[i]); a > maxabs {
				maxabs, pivrow = a, i
			}
		}
		if pivrow < 0 || maxabs == 0 {
			clearColumn(x, xi, top, n, marked)
			c.Status = StatusSingular

			return nil
		}
		if diag := col; nu.pinv[diag] < 0 && math.Abs(x[diag]) >= tol*maxabs && x[diag] != 0 {
			pivrow = diag // keep the diagonal whenever it is large enough
		}
		pivot := x[pivrow]
		nu.pinv[pivrow] = j
		nu.ud[j] = pivot
		if pivrow != col {
			c.Noffdiag++
		}

		// 5) Gather the column into U (pivotal rows) and L (remaining rows).
		for px := top; px < n; px++ {
			i := xi[px]
			k := nu.pinv[i]
			switch {
			case i == pivrow:
				// diagonal already stored
			case k >= 0:
				nu.ui = append(nu.ui, k)
				nu.ux = append(nu.ux, x[i])
			default:
				nu.li = append(nu.li, i) // original row id; remapped below
				nu.lx = append(nu.lx, x[i]/pivot)
			}
			x[i] = 0
		}
		marked.ClearAll()
		nu.lp[j+1] = int32(len(nu.li))
		nu.up[j+1] = int32(len(nu.ui))
	}

	// 6) Every row is pivotal now; move L's row ids into pivot space so
	//    Solve walks the factors without indirection.
	for q := range nu.li {
		nu.li[q] = nu.pinv[nu.li[q]]
	}

	c.Lnz = int32(len(nu.lx))
	c.Unz = int32(len(nu.ux))
	c.Status = StatusOK
	liveNumeric.Add(1)

	return nu
}

// reach computes the nonzero reach of column col through the current L
// columns. Nodes land in xi[top:] in topological order (ancestors first).
// DFS edges follow nu.li of already-pivotal nodes; marks stay set for the
// caller, which clears them after gathering the column.
func reach(colPtr, rowIdx []int32, col int32, nu *Numeric, xi, stackNode, stackPtr []int32, marked *bitset.BitSet) int32 {
	top := nu.n
	for p := colPtr[col]; p < colPtr[col+1]; p++ {
		start := rowIdx[p]
		if marked.Test(uint(start)) {
			continue
		}

		head := int32(0)
		stackNode[0] = start
		for head >= 0 {
			node := stackNode[head]
			if !marked.Test(uint(node)) {
				marked.Set(uint(node))
				if k := nu.pinv[node]; k >= 0 {
					stackPtr[head] = nu.lp[k]
				} else {
					stackPtr[head] = -1
				}
			}

			descended := false
			if k := nu.pinv[node]; k >= 0 {
				for q := stackPtr[head]; q < nu.lp[k+1]; q++ {
					child := nu.li[q]
					if marked.Test(uint(child)) {
						continue
					}
					stackPtr[head] = q + 1
					head++
					stackNode[head] = child
					descended = true

					break
				}
			}
			if !descended {
				head--
				top--
				xi[top] = node
			}
		}
	}

	return top
}

// clearColumn zeroes the scattered accumulator entries and DFS marks after
// an aborted column (singular pivot).
func clearColumn(x []float64, xi []int32, top, n int32, marked *bitset.BitSet) {
	for px := top; px < n; px++ {
		x[xi[px]] = 0
	}
	marked.ClearAll()
}

// rowScale builds the per-row divisors for the requested strategy. A row
// with no entries (or an all-zero row under ScaleSum/ScaleMax) makes the
// matrix singular and fails the factorization up front.
func rowScale(n int32, colPtr, rowIdx []int32, values []float64, scale int32) ([]float64, bool) {
	rs := make([]float64, n)
	if scale != ScaleSum && scale != ScaleMax {
		for i := range rs {
			rs[i] = 1
		}

		return rs, true
	}

	for j := int32(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			a := math.Abs(values[p])
			i := rowIdx[p]
			if scale == ScaleSum {
				rs[i] += a
			} else if a > rs[i] {
				rs[i] = a
			}
		}
	}
	for i := range rs {
		if rs[i] == 0 {
			return nil, false
		}
	}

	return rs, true
}
