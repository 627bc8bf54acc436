// SPDX-License-Identifier: MIT
// Package umfpack: symbolic phase (value-aware analysis).

package umfpack

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Symbolic holds the strategy decision and column pre-ordering computed
// by Analyze. Opaque to callers; released via FreeSymbolic.
type Symbolic struct {
	n        int32
	nnz      int32
	cperm    []int32 // column pre-ordering
	strategy int32   // StrategySymmetric or StrategyUnsymmetric (resolved)
	ordering int32   // ordering actually applied
}

// Dim returns the dimension the pattern was analyzed at.
func (s *Symbolic) Dim() int32 { return s.n }

// Analyze performs the symbolic phase on the n×n matrix (colPtr, rowIdx,
// values) and returns the symbolic handle plus a status code. Unlike back
// end A this phase reads the values: StrategyAuto inspects the numeric
// diagonal and the pattern symmetry to resolve the strategy, so passing
// the values is part of the call contract (nil values are an error).
//
// Writes InfoN, InfoNnz, InfoStrategyUsed, InfoOrderingUsed, InfoStatus.
func Analyze(n int32, colPtr, rowIdx []int32, values []float64, control *[ControlSize]float64, info *[InfoSize]float64) (*Symbolic, int32) {
	if control == nil || info == nil {
		return nil, StatusErrorInvalidMatrix
	}
	if !patternOK(n, colPtr, rowIdx) || int32(len(values)) != colPtr[n] {
		info[InfoStatus] = float64(StatusErrorInvalidMatrix)

		return nil, StatusErrorInvalidMatrix
	}

	s := &Symbolic{n: n, nnz: colPtr[n]}

	// 1) Resolve the strategy. Auto prefers symmetric when the pattern is
	//    (nearly) structurally symmetric and every diagonal entry is
	//    present and numerically nonzero; that is where diagonal
	//    pivoting preference pays off.
	s.strategy = int32(control[ControlStrategy])
	if s.strategy != StrategyUnsymmetric && s.strategy != StrategySymmetric {
		if symmetryRatio(n, colPtr, rowIdx) >= autoSymmetryThreshold && fullNonzeroDiagonal(n, colPtr, rowIdx, values) {
			s.strategy = StrategySymmetric
		} else {
			s.strategy = StrategyUnsymmetric
		}
	}

	// 2) Column pre-ordering under the resolved strategy.
	s.ordering = int32(control[ControlOrdering])
	switch s.ordering {
	case OrderingNatural:
		s.cperm = make([]int32, n)
		for k := int32(0); k < n; k++ {
			s.cperm[k] = k
		}
	case OrderingAMD:
		if s.strategy == StrategySymmetric {
			s.cperm = symmetricMinDegree(n, colPtr, rowIdx)
		} else {
			s.cperm = columnCountOrder(n, colPtr)
		}
	default:
		info[InfoStatus] = float64(StatusErrorInvalidMatrix)

		return nil, StatusErrorInvalidMatrix
	}

	info[InfoN] = float64(n)
	info[InfoNnz] = float64(s.nnz)
	info[InfoStrategyUsed] = float64(s.strategy)
	info[InfoOrderingUsed] = float64(s.ordering)
	info[InfoStatus] = float64(StatusOK)
	liveSymbolic.Add(1)

	return s, StatusOK
}

// autoSymmetryThreshold is the pattern-symmetry fraction above which the
// automatic strategy goes symmetric.
const autoSymmetryThreshold = 0.9

func patternOK(n int32, colPtr, rowIdx []int32) bool {
	if n <= 0 || int32(len(colPtr)) != n+1 || colPtr[0] != 0 {
		return false
	}
	for j := int32(0); j < n; j++ {
		if colPtr[j+1] < colPtr[j] {
			return false
		}
	}
	if int32(len(rowIdx)) != colPtr[n] {
		return false
	}
	for _, i := range rowIdx {
		if i < 0 || i >= n {
			return false
		}
	}

	return true
}

// symmetryRatio reports the fraction of off-diagonal entries (i,j) whose
// transpose position (j,i) is also present in the pattern.
func symmetryRatio(n int32, colPtr, rowIdx []int32) float64 {
	present := bitset.New(uint(n) * uint(n))
	for j := int32(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			present.Set(uint(rowIdx[p])*uint(n) + uint(j))
		}
	}

	offDiag, mirrored := 0, 0
	for j := int32(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			i := rowIdx[p]
			if i == j {
				continue
			}
			offDiag++
			if present.Test(uint(j)*uint(n) + uint(i)) {
				mirrored++
			}
		}
	}
	if offDiag == 0 {
		return 1 // diagonal pattern is trivially symmetric
	}

	return float64(mirrored) / float64(offDiag)
}

// fullNonzeroDiagonal reports whether every diagonal position is stored
// with a nonzero accumulated value. This is the value-aware part of the
// automatic strategy.
func fullNonzeroDiagonal(n int32, colPtr, rowIdx []int32, values []float64) bool {
	for j := int32(0); j < n; j++ {
		diag := 0.0
		found := false
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			if rowIdx[p] == j {
				diag += values[p]
				found = true
			}
		}
		if !found || diag == 0 {
			return false
		}
	}

	return true
}

// symmetricMinDegree orders by greedy minimum degree on the pattern of
// A+Aᵀ, tracking degrees incrementally in a plain array. Deterministic:
// ties break on the smallest column index.
func symmetricMinDegree(n int32, colPtr, rowIdx []int32) []int32 {
	un := uint(n)
	adj := make([]*bitset.BitSet, n)
	for v := int32(0); v < n; v++ {
		adj[v] = bitset.New(un)
	}
	for j := int32(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			if i := rowIdx[p]; i != j {
				adj[i].Set(uint(j))
				adj[j].Set(uint(i))
			}
		}
	}

	dead := bitset.New(un)
	perm := make([]int32, 0, n)
	for len(perm) < int(n) {
		best, bestDeg := int32(-1), uint(0)
		for v := int32(0); v < n; v++ {
			if dead.Test(uint(v)) {
				continue
			}
			if deg := adj[v].DifferenceCardinality(dead); best < 0 || deg < bestDeg {
				best, bestDeg = v, deg
			}
		}
		perm = append(perm, best)
		dead.Set(uint(best))
		for u, ok := adj[best].NextSet(0); ok; u, ok = adj[best].NextSet(u + 1) {
			if !dead.Test(u) {
				adj[u].InPlaceUnion(adj[best])
				adj[u].Clear(u)
				adj[u].Clear(uint(best))
			}
		}
	}

	return perm
}

// columnCountOrder is the unsymmetric-strategy pre-ordering: columns by
// ascending entry count, a cheap stand-in for column minimum degree.
// Stable on equal counts, so deterministic.
func columnCountOrder(n int32, colPtr []int32) []int32 {
	perm := make([]int32, n)
	for k := int32(0); k < n; k++ {
		perm[k] = k
	}
	sort.SliceStable(perm, func(a, b int) bool {
		ca := colPtr[perm[a]+1] - colPtr[perm[a]]
		cb := colPtr[perm[b]+1] - colPtr[perm[b]]

		return ca < cb
	})

	return perm
}
