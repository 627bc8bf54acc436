// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the sparse
// package. All constructors MUST return these sentinels and tests MUST check
// them via errors.Is. No constructor panics on user-triggered conditions.

package sparse

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and to allow
// easy grepping across logs. Do not %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary; callers still match via errors.Is.

var (
	// ErrBadDimension is returned when the requested dimension is not positive.
	ErrBadDimension = errors.New("sparse: dimension must be > 0")

	// ErrBadPointers indicates an invalid column-pointer sequence: wrong
	// length, nonzero first entry, or a decreasing step.
	ErrBadPointers = errors.New("sparse: invalid column pointers")

	// ErrBadIndices indicates a row index outside [0, n) or a row/value
	// length that disagrees with colPtr[n].
	ErrBadIndices = errors.New("sparse: invalid row indices")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrOutOfRange indicates a (row, col) position outside the matrix bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates a vector whose length disagrees with
	// the matrix dimension.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("sparse: nil receiver")

	// ErrEmpty is returned when converting a COO builder holding no entries.
	ErrEmpty = errors.New("sparse: no entries")
)
