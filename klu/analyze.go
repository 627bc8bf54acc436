// SPDX-License-Identifier: MIT
// Package klu: symbolic phase (pattern-only analysis).

package klu

import "github.com/bits-and-blooms/bitset"

// Symbolic holds the pre-ordering computed by Analyze. It is opaque to
// callers: sessions store it, pass it back to Factor, and release it via
// FreeSymbolic. The pattern it was computed from must not change for the
// lifetime of the handle.
type Symbolic struct {
	n    int32
	perm []int32 // fill-reducing ordering: pivot position k eliminates row/column perm[k]
}

// Dim returns the dimension the pattern was analyzed at.
func (s *Symbolic) Dim() int32 { return s.n }

// Analyze performs the symbolic factorization of the n×n pattern given by
// (colPtr, rowIdx). Values are deliberately absent: this back end's
// analysis is pattern-only.
//
// On success it returns a fresh Symbolic and sets c.Status = StatusOK.
// On malformed input it returns nil with c.Status = StatusInvalid.
//
// Complexity: O(n² · n/64) worst case for the minimum-degree ordering;
// O(n + nnz) for OrderingNatural.
func Analyze(n int32, colPtr, rowIdx []int32, c *Common) *Symbolic {
	if c == nil {
		return nil
	}
	if !validPattern(n, colPtr, rowIdx) {
		c.Status = StatusInvalid

		return nil
	}

	s := &Symbolic{n: n}
	switch c.Ordering {
	case OrderingNatural:
		s.perm = identityPerm(n)
	case OrderingAMD:
		s.perm = minDegreePerm(n, colPtr, rowIdx)
	default:
		c.Status = StatusInvalid

		return nil
	}

	c.Status = StatusOK
	liveSymbolic.Add(1)

	return s
}

// validPattern checks the CSC structural invariants the kernels rely on.
func validPattern(n int32, colPtr, rowIdx []int32) bool {
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

func identityPerm(n int32) []int32 {
	perm := make([]int32, n)
	for k := int32(0); k < n; k++ {
		perm[k] = k
	}

	return perm
}

// minDegreePerm computes a greedy minimum-degree ordering on the pattern
// of A+Aᵀ (diagonal ignored). Classic elimination-graph formulation: the
// eliminated vertex's neighborhood becomes a clique, degrees are counted
// against the set of not-yet-eliminated vertices. Ties break on the
// smallest index, so the ordering is deterministic.
func minDegreePerm(n int32, colPtr, rowIdx []int32) []int32 {
	un := uint(n)

	// Adjacency of A+Aᵀ as one bitset row per vertex.
	adj := make([]*bitset.BitSet, n)
	for v := int32(0); v < n; v++ {
		adj[v] = bitset.New(un)
	}
	for j := int32(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			i := rowIdx[p]
			if i == j {
				continue
			}
			adj[i].Set(uint(j))
			adj[j].Set(uint(i))
		}
	}

	dead := bitset.New(un) // eliminated vertices
	perm := make([]int32, 0, n)

	for step := int32(0); step < n; step++ {
		// 1) Pick the live vertex of minimum degree (smallest index wins ties).
		best := int32(-1)
		bestDeg := uint(0)
		for v := int32(0); v < n; v++ {
			if dead.Test(uint(v)) {
				continue
			}
			deg := adj[v].DifferenceCardinality(dead)
			if best < 0 || deg < bestDeg {
				best, bestDeg = v, deg
			}
		}

		// 2) Eliminate it: every live neighbor absorbs its neighborhood.
		perm = append(perm, best)
		dead.Set(uint(best))
		for u, ok := adj[best].NextSet(0); ok; u, ok = adj[best].NextSet(u + 1) {
			if dead.Test(u) {
				continue
			}
			adj[u].InPlaceUnion(adj[best])
			adj[u].Clear(u)
			adj[u].Clear(uint(best))
		}
	}

	return perm
}
