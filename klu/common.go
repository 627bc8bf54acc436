// SPDX-License-Identifier: MIT
// Package klu: control/statistics block, status codes, handle bookkeeping.

package klu

import "sync/atomic"

// Status codes reported through Common.Status. Zero is success; the
// positive code flags a computational (not protocol) condition; negative
// codes flag invalid use of the engine.
const (
	// StatusOK - the call completed successfully.
	StatusOK int32 = 0

	// StatusSingular - a zero (or structurally absent) pivot was met during
	// factorization, or a row of the matrix is identically zero.
	StatusSingular int32 = 1

	// StatusOutOfMemory - kept for parity with the native engine's code set;
	// the pure-Go kernels never produce it.
	StatusOutOfMemory int32 = -2

	// StatusInvalid - malformed input (bad pointers, bad dimension, nil
	// handle where one is required).
	StatusInvalid int32 = -3
)

// Ordering strategies accepted by Analyze via Common.Ordering.
const (
	// OrderingAMD - minimum-degree ordering on the pattern of A+Aᵀ (default).
	OrderingAMD int32 = 0

	// OrderingNatural - identity ordering; factor the matrix as given.
	OrderingNatural int32 = 1
)

// Row-scaling strategies applied by Factor via Common.Scale.
const (
	// ScaleNone - no scaling.
	ScaleNone int32 = 0

	// ScaleSum - divide each row by the sum of its absolute values.
	ScaleSum int32 = 1

	// ScaleMax - divide each row by its largest absolute value (default).
	ScaleMax int32 = 2
)

// DefaultTol is the threshold partial-pivoting tolerance: the diagonal
// candidate is kept whenever |diag| >= DefaultTol * max|candidate|.
const DefaultTol = 0.001

// Common holds the control parameters read by Analyze/Factor/Solve and
// the statistics they write back. One Common is owned per session; the
// engine never keeps global state.
type Common struct {
	// Controls (set before Analyze; read-only afterwards).
	Ordering int32   // OrderingAMD or OrderingNatural
	Scale    int32   // ScaleNone, ScaleSum or ScaleMax
	Tol      float64 // partial-pivoting threshold in (0, 1]

	// Statistics (overwritten by each call).
	Status   int32   // status of the last call
	Condest  float64 // written by Condest
	Lnz      int32   // off-diagonal entries in L (written by Factor)
	Unz      int32   // off-diagonal entries in U (written by Factor)
	Noffdiag int32   // off-diagonal pivots chosen (written by Factor)
}

// Defaults resets c to the engine defaults, like the native klu_defaults.
func Defaults(c *Common) {
	if c == nil {
		return
	}
	*c = Common{
		Ordering: OrderingAMD,
		Scale:    ScaleMax,
		Tol:      DefaultTol,
	}
}

// Live-handle counters. Incremented on successful Analyze/Factor,
// decremented by the Free functions; tests use them to assert that no
// handle leaks and none is freed twice.
var (
	liveSymbolic atomic.Int64
	liveNumeric  atomic.Int64
)

// LiveSymbolic reports the number of Symbolic handles not yet freed.
func LiveSymbolic() int64 { return liveSymbolic.Load() }

// LiveNumeric reports the number of Numeric handles not yet freed.
func LiveNumeric() int64 { return liveNumeric.Load() }

// FreeSymbolic releases *s and nils the caller's pointer, mirroring the
// native klu_free_symbolic(&s, &common) contract. Safe on nil / already
// freed handles; freeing twice is therefore structurally impossible.
func FreeSymbolic(s **Symbolic, c *Common) {
	if s == nil || *s == nil {
		return
	}
	liveSymbolic.Add(-1)
	*s = nil
	if c != nil {
		c.Status = StatusOK
	}
}

// FreeNumeric releases *nu and nils the caller's pointer. Same contract
// as FreeSymbolic.
func FreeNumeric(nu **Numeric, c *Common) {
	if nu == nil || *nu == nil {
		return
	}
	liveNumeric.Add(-1)
	*nu = nil
	if c != nil {
		c.Status = StatusOK
	}
}
