// SPDX-License-Identifier: MIT
// Package sparse: COO triplet builder.
//
// Purpose:
//   - Let callers assemble a matrix entry by entry (finite-element style,
//     circuit-stamp style) without thinking about column order.
//   - Convert to the canonical CSC view, summing duplicate positions.

package sparse

import (
	"math"
	"sort"
)

// COO accumulates (row, col, value) triplets for a square matrix of
// dimension n. Duplicate positions are legal and are summed by ToCSC.
// The zero value is not usable; construct via NewCOO.
type COO struct {
	n    int32
	rows []int32
	cols []int32
	vals []float64
}

// NewCOO returns an empty triplet builder for an n×n matrix.
//
// Errors: ErrBadDimension.
func NewCOO(n int32) (*COO, error) {
	if n <= 0 {
		return nil, cscErrorf("NewCOO", ErrBadDimension)
	}

	return &COO{n: n}, nil
}

// Dim returns the matrix dimension n.
func (c *COO) Dim() int32 { return c.n }

// Len returns the number of triplets stored so far (duplicates counted).
func (c *COO) Len() int { return len(c.vals) }

// Put appends the triplet (row, col, value). Appending the same position
// twice accumulates: ToCSC sums duplicates.
//
// Errors: ErrNilMatrix, ErrOutOfRange, ErrNaNInf.
// Complexity: amortized O(1).
func (c *COO) Put(row, col int32, value float64) error {
	if c == nil {
		return cscErrorf("Put", ErrNilMatrix)
	}
	if row < 0 || row >= c.n || col < 0 || col >= c.n {
		return cscErrorf("Put", ErrOutOfRange)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return cscErrorf("Put", ErrNaNInf)
	}

	c.rows = append(c.rows, row)
	c.cols = append(c.cols, col)
	c.vals = append(c.vals, value)

	return nil
}

// ToCSC converts the accumulated triplets into a CSC view with sorted row
// indices per column and duplicates summed. The builder is left unchanged
// and may keep accumulating for a later conversion.
//
// Implementation:
//  1. Count entries per column and build column pointers by prefix sum.
//  2. Scatter triplets into place (counting sort on the column).
//  3. Sort each column segment by row and compress duplicates, rebuilding
//     the pointers to the compressed layout.
//
// Errors: ErrNilMatrix, ErrEmpty.
// Complexity: O(nnz log nnz) time, O(n + nnz) space.
func (c *COO) ToCSC() (*CSC, error) {
	if c == nil {
		return nil, cscErrorf("ToCSC", ErrNilMatrix)
	}
	if len(c.vals) == 0 {
		return nil, cscErrorf("ToCSC", ErrEmpty)
	}

	n := int(c.n)
	nz := len(c.vals)

	// 1) Column counts → pointers.
	colPtr := make([]int32, n+1)
	for _, j := range c.cols {
		colPtr[j+1]++
	}
	for j := 0; j < n; j++ {
		colPtr[j+1] += colPtr[j]
	}

	// 2) Scatter triplets; next tracks the write head per column.
	rowIdx := make([]int32, nz)
	values := make([]float64, nz)
	next := make([]int32, n)
	copy(next, colPtr[:n])
	for k := 0; k < nz; k++ {
		p := next[c.cols[k]]
		rowIdx[p] = c.rows[k]
		values[p] = c.vals[k]
		next[c.cols[k]]++
	}

	// 3) Per column: sort by row, then compress duplicates in place.
	//    w is the global write position of the compressed layout; since
	//    compression only shrinks segments, w never overtakes the read head.
	var w int32
	outPtr := make([]int32, n+1)
	for j := 0; j < n; j++ {
		lo, hi := colPtr[j], colPtr[j+1]
		seg := int(hi - lo)
		if seg > 1 {
			sort.Sort(&colSegment{rowIdx[lo:hi], values[lo:hi]})
		}
		for p := lo; p < hi; p++ {
			if w > outPtr[j] && rowIdx[w-1] == rowIdx[p] {
				values[w-1] += values[p] // duplicate position: accumulate
				continue
			}
			rowIdx[w] = rowIdx[p]
			values[w] = values[p]
			w++
		}
		outPtr[j+1] = w
	}

	return &CSC{n: c.n, colPtr: outPtr, rowIdx: rowIdx[:w], values: values[:w]}, nil
}

// colSegment sorts one column's (row, value) pairs by row index.
type colSegment struct {
	rows []int32
	vals []float64
}

func (s *colSegment) Len() int           { return len(s.rows) }
func (s *colSegment) Less(i, j int) bool { return s.rows[i] < s.rows[j] }
func (s *colSegment) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
