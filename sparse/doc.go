// Package sparse defines the matrix data model shared by every solver
// back end: a compressed-sparse-column (CSC) view and a COO triplet
// builder for assembling one.
//
// The CSC view is *borrowed* by solver sessions for the duration of a
// call only: sessions never retain references to the column-pointer,
// row-index or value slices after a call returns. Ownership stays with
// the caller.
//
// Structural invariants enforced by NewCSC (and relied upon by the
// engines, which do not re-validate):
//
//   - dimension n > 0
//   - len(colPtr) == n+1, colPtr[0] == 0, entries non-decreasing
//   - len(rowIdx) == len(values) == colPtr[n]
//   - every row index lies in [0, n)
//   - every value is finite (no NaN, no ±Inf)
//
// Row indices inside a column do not need to be sorted; duplicates are
// the caller's responsibility (the COO builder sums them during ToCSC).
package sparse
