// SPDX-License-Identifier: MIT
// Package umfpack: numeric phase.
//
// Column-oriented sparse LU in the Gilbert–Peierls mold, driven by the
// column pre-ordering from the symbolic handle. Pivoting is threshold
// partial pivoting; the diagonal candidate is preferred only under the
// symmetric strategy, where the analysis promised it is worth keeping.

package umfpack

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Numeric holds the factors computed by Factor: P·R·A·Q = L·U. Opaque to
// callers; released via FreeNumeric. The determinant is derived from it
// on demand (see Determinant).
type Numeric struct {
	n int32

	lp, li []int32 // L, unit diagonal implicit, rows in pivot space
	lx     []float64
	up, ui []int32 // U off-diagonal, rows in pivot space
	ux     []float64
	ud     []float64 // U diagonal

	pinv  []int32   // original row -> pivot position
	cperm []int32   // column pre-ordering (copied from the symbolic)
	rs    []float64 // row scale divisors

	permSign float64 // sign(P)·sign(Q), for the determinant
}

// Dim returns the dimension of the factorization.
func (nu *Numeric) Dim() int32 { return nu.n }

// Factor computes the numeric factorization of (colPtr, rowIdx, values)
// against the symbolic handle. The pattern must match the one analyzed;
// a different entry count is rejected with StatusErrorDifferentPattern
// (finer pattern drift is undefined, per the engine contract).
//
// Writes InfoLnz, InfoUnz, InfoNoffDiag, InfoRcond, InfoStatus. Returns
// (nil, StatusWarningSingularMatrix) on a zero pivot or zero row.
func Factor(colPtr, rowIdx []int32, values []float64, sym *Symbolic, control *[ControlSize]float64, info *[InfoSize]float64) (*Numeric, int32) {
	if control == nil || info == nil {
		return nil, StatusErrorInvalidMatrix
	}
	if sym == nil {
		info[InfoStatus] = float64(StatusErrorInvalidSymbolic)

		return nil, StatusErrorInvalidSymbolic
	}
	n := sym.n
	if int32(len(colPtr)) != n+1 || colPtr[n] != sym.nnz {
		info[InfoStatus] = float64(StatusErrorDifferentPattern)

		return nil, StatusErrorDifferentPattern
	}
	if int32(len(rowIdx)) != sym.nnz || int32(len(values)) != sym.nnz {
		info[InfoStatus] = float64(StatusErrorInvalidMatrix)

		return nil, StatusErrorInvalidMatrix
	}

	tol := control[ControlPivotTolerance]
	if tol <= 0 || tol > 1 {
		tol = DefaultPivotTolerance
	}

	rs, ok := scaleRows(n, colPtr, rowIdx, values, int32(control[ControlScale]))
	if !ok {
		info[InfoStatus] = float64(StatusWarningSingularMatrix)

		return nil, StatusWarningSingularMatrix
	}

	nu := &Numeric{
		n:        n,
		lp:       make([]int32, n+1),
		up:       make([]int32, n+1),
		ud:       make([]float64, n),
		pinv:     make([]int32, n),
		cperm:    append([]int32(nil), sym.cperm...),
		rs:       rs,
		permSign: 1,
	}
	for i := range nu.pinv {
		nu.pinv[i] = -1
	}

	x := make([]float64, n)
	reachStack := newReachState(n)
	noffdiag := int32(0)

	preferDiagonal := sym.strategy == StrategySymmetric
	for j := int32(0); j < n; j++ {
		col := sym.cperm[j]

		top := reachStack.reach(colPtr, rowIdx, col, nu)

		for p := colPtr[col]; p < colPtr[col+1]; p++ {
			i := rowIdx[p]
			x[i] += values[p] / rs[i]
		}
		for px := top; px < n; px++ {
			i := reachStack.xi[px]
			k := nu.pinv[i]
			if k < 0 {
				continue
			}
			xk := x[i]
			for q := nu.lp[k]; q < nu.lp[k+1]; q++ {
				x[nu.li[q]] -= xk * nu.lx[q]
			}
		}

		pivrow, maxabs := int32(-1), 0.0
		for px := top; px < n; px++ {
			i := reachStack.xi[px]
			if nu.pinv[i] >= 0 {
				continue
			}
			if a := math.Abs(x[i]); a > maxabs {
				maxabs, pivrow = a, i
			}
		}
		if pivrow < 0 || maxabs == 0 {
			reachStack.discard(x, top, n)
			info[InfoStatus] = float64(StatusWarningSingularMatrix)

			return nil, StatusWarningSingularMatrix
		}
		if preferDiagonal && nu.pinv[col] < 0 && x[col] != 0 && math.Abs(x[col]) >= tol*maxabs {
			pivrow = col
		}

		pivot := x[pivrow]
		nu.pinv[pivrow] = j
		nu.ud[j] = pivot
		if pivrow != col {
			noffdiag++
		}

		for px := top; px < n; px++ {
			i := reachStack.xi[px]
			k := nu.pinv[i]
			switch {
			case i == pivrow:
			case k >= 0:
				nu.ui = append(nu.ui, k)
				nu.ux = append(nu.ux, x[i])
			default:
				nu.li = append(nu.li, i)
				nu.lx = append(nu.lx, x[i]/pivot)
			}
			x[i] = 0
		}
		reachStack.marked.ClearAll()
		nu.lp[j+1] = int32(len(nu.li))
		nu.up[j+1] = int32(len(nu.ui))
	}

	// Finalize: L rows into pivot space, permutation signs, rcond.
	for q := range nu.li {
		nu.li[q] = nu.pinv[nu.li[q]]
	}
	nu.permSign = permParity(nu.pinv) * permParity(nu.cperm)

	minU, maxU := math.Inf(1), 0.0
	for _, d := range nu.ud {
		a := math.Abs(d)
		if a < minU {
			minU = a
		}
		if a > maxU {
			maxU = a
		}
	}

	info[InfoLnz] = float64(len(nu.lx))
	info[InfoUnz] = float64(len(nu.ux))
	info[InfoNoffDiag] = float64(noffdiag)
	info[InfoRcond] = minU / maxU
	info[InfoStatus] = float64(StatusOK)
	liveNumeric.Add(1)

	return nu, StatusOK
}

// reachState bundles the DFS workspace reused across columns.
type reachState struct {
	xi     []int32 // topological reach in xi[top:]
	node   []int32
	cursor []int32
	marked *bitset.BitSet
}

func newReachState(n int32) *reachState {
	return &reachState{
		xi:     make([]int32, n),
		node:   make([]int32, n),
		cursor: make([]int32, n),
		marked: bitset.New(uint(n)),
	}
}

// reach walks the pattern of column col through the current L columns,
// depth first, leaving the reach in xi[top:] in topological order.
func (r *reachState) reach(colPtr, rowIdx []int32, col int32, nu *Numeric) int32 {
	top := nu.n
	for p := colPtr[col]; p < colPtr[col+1]; p++ {
		start := rowIdx[p]
		if r.marked.Test(uint(start)) {
			continue
		}

		head := int32(0)
		r.node[0] = start
		for head >= 0 {
			v := r.node[head]
			if !r.marked.Test(uint(v)) {
				r.marked.Set(uint(v))
				if k := nu.pinv[v]; k >= 0 {
					r.cursor[head] = nu.lp[k]
				}
			}

			descended := false
			if k := nu.pinv[v]; k >= 0 {
				for q := r.cursor[head]; q < nu.lp[k+1]; q++ {
					child := nu.li[q]
					if r.marked.Test(uint(child)) {
						continue
					}
					r.cursor[head] = q + 1
					head++
					r.node[head] = child
					descended = true

					break
				}
			}
			if !descended {
				head--
				top--
				r.xi[top] = v
			}
		}
	}

	return top
}

// discard zeroes the scattered accumulator and marks after an aborted column.
func (r *reachState) discard(x []float64, top, n int32) {
	for px := top; px < n; px++ {
		x[r.xi[px]] = 0
	}
	r.marked.ClearAll()
}

// scaleRows builds the row divisors; a zero row fails up front (singular).
func scaleRows(n int32, colPtr, rowIdx []int32, values []float64, scale int32) ([]float64, bool) {
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

// permParity returns +1 or -1: the sign of the permutation, by cycle
// decomposition.
func permParity(perm []int32) float64 {
	n := len(perm)
	seen := make([]bool, n)
	sign := 1.0
	for i := 0; i < n; i++ {
		if seen[i] {
			continue
		}
		length := 0
		for j := i; !seen[j]; j = int(perm[j]) {
			seen[j] = true
			length++
		}
		if length%2 == 0 {
			sign = -sign
		}
	}

	return sign
}
