// SPDX-License-Identifier: MIT
// Package sparse: compressed-sparse-column matrix view.
//
// Purpose:
//   - Provide the single canonical matrix representation consumed by the
//     solver back ends (dimension, column pointers, row indices, values).
//   - Centralize structural validation so engine kernels stay minimal.
//
// Determinism & Performance:
//   - Validation is a single pass over pointers, indices and values: O(n+nnz).
//   - Accessors return the backing slices without copying; the view borrows,
//     it does not own.

package sparse

import (
	"fmt"
	"math"
)

// CSC is a square sparse matrix in compressed-sparse-column form.
//
// Indices are int32 to mirror the native solver interfaces this library
// models; values are float64. The zero value is not usable; construct
// via NewCSC or COO.ToCSC.
type CSC struct {
	n      int32
	colPtr []int32
	rowIdx []int32
	values []float64
}

// cscErrorf wraps an underlying sentinel with the originating check tag,
// preserving errors.Is matching.
func cscErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NewCSC wraps the given CSC triple (colPtr, rowIdx, values) of dimension n
// after validating every structural invariant listed in the package doc.
//
// The slices are borrowed, not copied: the caller must not mutate the
// pattern while a session holds a symbolic factorization of it.
//
// Errors: ErrBadDimension, ErrBadPointers, ErrBadIndices, ErrNaNInf.
// Complexity: O(n + nnz) time, O(1) space.
func NewCSC(n int32, colPtr, rowIdx []int32, values []float64) (*CSC, error) {
	// 1) Dimension must be positive.
	if n <= 0 {
		return nil, cscErrorf("NewCSC", ErrBadDimension)
	}

	// 2) Column pointers: length n+1, start at zero, non-decreasing.
	if int32(len(colPtr)) != n+1 {
		return nil, cscErrorf("NewCSC: length", ErrBadPointers)
	}
	if colPtr[0] != 0 {
		return nil, cscErrorf("NewCSC: first entry", ErrBadPointers)
	}
	var j int32
	for j = 0; j < n; j++ {
		if colPtr[j+1] < colPtr[j] {
			return nil, cscErrorf("NewCSC: decreasing step", ErrBadPointers)
		}
	}

	// 3) Row indices and values must both span exactly colPtr[n] entries.
	nnz := colPtr[n]
	if int32(len(rowIdx)) != nnz || int32(len(values)) != nnz {
		return nil, cscErrorf("NewCSC: nnz", ErrBadIndices)
	}

	// 4) Every row index in [0, n); every value finite.
	var p int32
	for p = 0; p < nnz; p++ {
		if rowIdx[p] < 0 || rowIdx[p] >= n {
			return nil, cscErrorf("NewCSC: row index", ErrBadIndices)
		}
		if math.IsNaN(values[p]) || math.IsInf(values[p], 0) {
			return nil, cscErrorf("NewCSC: value", ErrNaNInf)
		}
	}

	return &CSC{n: n, colPtr: colPtr, rowIdx: rowIdx, values: values}, nil
}

// Dim returns the matrix dimension n.
func (m *CSC) Dim() int32 { return m.n }

// Nnz returns the number of stored entries, colPtr[n].
func (m *CSC) Nnz() int32 { return m.colPtr[m.n] }

// ColPtr returns the backing column-pointer slice (length n+1). Borrowed.
func (m *CSC) ColPtr() []int32 { return m.colPtr }

// RowIdx returns the backing row-index slice (length nnz). Borrowed.
func (m *CSC) RowIdx() []int32 { return m.rowIdx }

// Values returns the backing value slice (length nnz). Borrowed.
func (m *CSC) Values() []float64 { return m.values }

// At returns the entry at (row, col), summing duplicates if present.
// Positions outside the stored pattern read as 0.
//
// Errors: ErrNilMatrix, ErrOutOfRange.
// Complexity: O(nnz(col)).
func (m *CSC) At(row, col int32) (float64, error) {
	if m == nil {
		return 0, cscErrorf("At", ErrNilMatrix)
	}
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, cscErrorf("At", ErrOutOfRange)
	}

	sum := 0.0
	for p := m.colPtr[col]; p < m.colPtr[col+1]; p++ {
		if m.rowIdx[p] == row {
			sum += m.values[p]
		}
	}

	return sum, nil
}

// MatVec computes y = A·x into a freshly allocated slice.
// Useful for residual checks against a solver solution.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n + nnz) time, O(n) space.
func (m *CSC) MatVec(x []float64) ([]float64, error) {
	if m == nil {
		return nil, cscErrorf("MatVec", ErrNilMatrix)
	}
	if int32(len(x)) != m.n {
		return nil, cscErrorf("MatVec", ErrDimensionMismatch)
	}

	y := make([]float64, m.n)
	var j int32
	for j = 0; j < m.n; j++ {
		xj := x[j]
		if xj == 0 {
			continue // column contributes nothing
		}
		for p := m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			y[m.rowIdx[p]] += m.values[p] * xj
		}
	}

	return y, nil
}
